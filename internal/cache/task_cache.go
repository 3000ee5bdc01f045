package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thenamakop/taskboard/internal/models"
)

const taskListKeyPrefix = "tasks:user:"

// TaskCache caches each user's task list in Redis. Every write path
// invalidates the owner's entry, so a hit always reflects the latest
// committed state.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for the user, or nil on miss.
func (c *TaskCache) GetList(ctx context.Context, userID string) ([]models.Task, error) {
	b, err := c.rdb.Get(ctx, taskListKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []models.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the user's list.
func (c *TaskCache) SetList(ctx context.Context, userID string, list []models.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, taskListKeyPrefix+userID, b, c.ttl).Err()
}

// Invalidate removes the user's cached list.
func (c *TaskCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, taskListKeyPrefix+userID).Err()
}
