package state

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ExpansionStore remembers which categories were expanded in the editor.
type ExpansionStore interface {
	LoadExpanded(ctx context.Context) ([]string, error)
	SaveExpanded(ctx context.Context, categoryIDs []string) error
}

type redisExpansionStore struct {
	redisClient *redis.Client
	key         string
}

func NewRedisExpansionStore(redisClient *redis.Client, keyPrefix string) ExpansionStore {
	return &redisExpansionStore{
		redisClient: redisClient,
		key:         keyPrefix + "categories:expanded",
	}
}

func (s *redisExpansionStore) LoadExpanded(ctx context.Context) ([]string, error) {
	ids, err := s.redisClient.SMembers(ctx, s.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Nothing saved yet
		}
		return nil, fmt.Errorf("failed to load expanded categories: %w", err)
	}
	return ids, nil
}

// SaveExpanded replaces the stored set atomically.
func (s *redisExpansionStore) SaveExpanded(ctx context.Context, categoryIDs []string) error {
	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(categoryIDs) == 0 {
			return nil
		}
		members := make([]interface{}, len(categoryIDs))
		for i, id := range categoryIDs {
			members[i] = id
		}
		pipe.SAdd(ctx, s.key, members...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save expanded categories: %w", err)
	}
	return nil
}
