package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// PresenceStore keeps the short-lived "online" marker per user in Redis.
type PresenceStore struct {
	rdb *redis.Client
}

func NewPresenceStore(rdb *redis.Client) *PresenceStore {
	return &PresenceStore{rdb: rdb}
}

func onlineKey(userID int64) string {
	return "user-is-online-" + strconv.FormatInt(userID, 10)
}

// MarkOnline sets the marker, resetting any previous TTL.
func (s *PresenceStore) MarkOnline(ctx context.Context, userID int64, ttl time.Duration) error {
	return s.rdb.Set(ctx, onlineKey(userID), "1", ttl).Err()
}

// Online reports which of ids currently carry the marker.
func (s *PresenceStore) Online(ctx context.Context, ids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Exists(ctx, onlineKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	for i, id := range ids {
		out[id] = cmds[i].Val() > 0
	}
	return out, nil
}
