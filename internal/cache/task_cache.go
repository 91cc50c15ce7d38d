package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/domain"

	"github.com/redis/go-redis/v9"
)

// statusKeyAll is the key segment for an unfiltered listing.
const statusKeyAll = "all"

// ListKey derives the cache key for a user's task listing under the given
// normalized status filter ("" means no filter). The full key set per user
// is the invalidation fan-out: all, pendente, em_andamento, concluida.
func ListKey(userID int64, status string) string {
	k := status
	if k == "" {
		k = statusKeyAll
	}
	return "tasks:user:" + strconv.FormatInt(userID, 10) + ":status:" + k
}

// fanOutKeys returns every list key variant for a user.
func fanOutKeys(userID int64) []string {
	keys := make([]string, 0, len(domain.ValidStatuses())+1)
	keys = append(keys, ListKey(userID, ""))
	for _, s := range domain.ValidStatuses() {
		keys = append(keys, ListKey(userID, s))
	}
	return keys
}

// TaskCache caches per-user task listings in Redis, one key per status
// filter variant. Values are JSON snapshots of the listing at write time.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing for (userID, status). The second
// result distinguishes a genuine hit from a miss, so an empty listing
// still counts as cached.
func (c *TaskCache) GetList(ctx context.Context, userID int64, status string) ([]domain.Task, bool, error) {
	b, err := c.rdb.Get(ctx, ListKey(userID, status)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var list []domain.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// SetList stores the listing under its (userID, status) key with the
// configured TTL. Entries age from write time; reads never refresh them.
func (c *TaskCache) SetList(ctx context.Context, userID int64, status string, list []domain.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ListKey(userID, status), b, c.ttl).Err()
}

// InvalidateUser deletes every list key variant for the user. Deletes are
// issued independently so one failing key never shields the others; the
// first error is reported only after the whole fan-out ran.
func (c *TaskCache) InvalidateUser(ctx context.Context, userID int64) error {
	var firstErr error
	for _, key := range fanOutKeys(userID) {
		if err := c.rdb.Del(ctx, key).Err(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ping reports whether the backend currently answers.
func (c *TaskCache) Ping(ctx context.Context) bool {
	return c.rdb.Ping(ctx).Err() == nil
}
