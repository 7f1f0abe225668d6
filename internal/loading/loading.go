// Package loading tracks which entity/action pairs have a request in flight.
package loading

import "sync"

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type record struct {
	key    string
	action Action
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu       sync.RWMutex
	inFlight map[record]int
}

func NewTracker() *Tracker {
	return &Tracker{inFlight: make(map[record]int)}
}

// Start marks key/action as in flight. The returned func clears the mark and
// is meant to be deferred.
func (t *Tracker) Start(key string, action Action) (done func()) {
	r := record{key: key, action: action}

	t.mu.Lock()
	t.inFlight[r]++
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()

			if t.inFlight[r] <= 1 {
				delete(t.inFlight, r)
				return
			}
			t.inFlight[r]--
		})
	}
}

func (t *Tracker) IsLoading(key string, action Action) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.inFlight[record{key: key, action: action}] > 0
}

// Any reports whether key has any action in flight.
func (t *Tracker) Any(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for r := range t.inFlight {
		if r.key == key {
			return true
		}
	}
	return false
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.inFlight)
}
