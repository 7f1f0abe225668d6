package queue

import (
	"context"
	"fmt"
	"time"

	"mentorship/admin/internal/notify"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	notificationStream = "stream:notifications"
	maxStreamLength    = 1000
	publishTimeout     = 2 * time.Second
)

// Notification is one entry of the notification stream.
type Notification struct {
	ID        string
	Level     notify.Level
	Message   string
	CreatedAt time.Time
}

// StreamNotifier publishes notifications to a Redis stream so other
// dashboard processes can display them.
type StreamNotifier struct {
	redisClient *redis.Client
	streamName  string
}

func NewStreamNotifier(redisClient *redis.Client, keyPrefix string) *StreamNotifier {
	return &StreamNotifier{
		redisClient: redisClient,
		streamName:  keyPrefix + notificationStream,
	}
}

func (q *StreamNotifier) Success(message string) { q.publish(notify.LevelSuccess, message) }
func (q *StreamNotifier) Error(message string)   { q.publish(notify.LevelError, message) }
func (q *StreamNotifier) Info(message string)    { q.publish(notify.LevelInfo, message) }

// publish never fails the caller; a lost notification is only logged.
func (q *StreamNotifier) publish(level notify.Level, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if _, err := q.Publish(ctx, level, message); err != nil {
		log.WithError(err).Warn("⚠️ Failed to publish notification")
	}
}

// Publish appends a notification and returns its message ID. The stream is
// trimmed to roughly the last 1000 entries.
func (q *StreamNotifier) Publish(ctx context.Context, level notify.Level, message string) (string, error) {
	messageID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: q.streamName,
		MaxLen: maxStreamLength,
		Approx: true,
		Values: map[string]interface{}{
			"level":      string(level),
			"message":    message,
			"created_at": time.Now().UTC().Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add notification to Redis stream %s: %w", q.streamName, err)
	}

	log.Debugf("Added %s notification to stream %s with message ID: %s", level, q.streamName, messageID)
	return messageID, nil
}

// Recent returns up to count notifications, newest first.
func (q *StreamNotifier) Recent(ctx context.Context, count int64) ([]Notification, error) {
	messages, err := q.redisClient.XRevRangeN(ctx, q.streamName, "+", "-", count).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from Redis stream %s: %w", q.streamName, err)
	}

	out := make([]Notification, 0, len(messages))
	for _, m := range messages {
		out = append(out, fromMessage(m))
	}
	return out, nil
}

func fromMessage(m redis.XMessage) Notification {
	n := Notification{ID: m.ID}
	if v, ok := m.Values["level"].(string); ok {
		n.Level = notify.Level(v)
	}
	if v, ok := m.Values["message"].(string); ok {
		n.Message = v
	}
	if v, ok := m.Values["created_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			n.CreatedAt = t
		}
	}
	return n
}
