package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const temporaryPrefix = "temp-"

// ID identifies a category or subcategory. A temporary ID marks an entity
// that exists only client-side; a persisted ID was issued by the server.
type ID struct {
	value     string
	temporary bool
}

// NewTemporaryID returns a fresh client-side identifier.
func NewTemporaryID() ID {
	return ID{value: uuid.NewString(), temporary: true}
}

// PersistedID wraps a server-issued identifier.
func PersistedID(serverID string) ID {
	return ID{value: serverID}
}

func (id ID) IsTemporary() bool {
	return id.temporary
}

func (id ID) IsZero() bool {
	return id.value == ""
}

// Value returns the raw server identifier or local token.
func (id ID) Value() string {
	return id.value
}

// String renders the ID for display and map keys. Temporary IDs carry the
// "temp-" prefix so they never collide with persisted ones.
func (id ID) String() string {
	if id.temporary {
		return temporaryPrefix + id.value
	}
	return id.value
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.temporary {
		return nil, fmt.Errorf("temporary id %s cannot be sent to the server", id)
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON always yields a persisted ID, whatever the server sends.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = PersistedID(strings.TrimSpace(raw))
	return nil
}
