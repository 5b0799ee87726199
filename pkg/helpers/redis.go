package helpers

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SessionKey is the hash holding the active login session of a user.
func SessionKey(userID int64) string {
	return "user:session:" + strconv.FormatInt(userID, 10)
}

// SaveSession writes fields to the session hash and (re)sets its TTL.
func SaveSession(ctx context.Context, rdb *redis.Client, userID int64, fields map[string]any, ttl time.Duration) error {
	key := SessionKey(userID)
	pipe := rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// SessionID returns the sid stored in the user's session, or "" when absent.
func SessionID(ctx context.Context, rdb *redis.Client, userID int64) (string, error) {
	sid, err := rdb.HGet(ctx, SessionKey(userID), "sid").Result()
	if err == redis.Nil {
		return "", nil
	}
	return sid, err
}

func DeleteSession(ctx context.Context, rdb *redis.Client, userID int64) error {
	return rdb.Del(ctx, SessionKey(userID)).Err()
}
