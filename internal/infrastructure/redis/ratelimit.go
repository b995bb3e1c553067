package redisstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowLimiter is a fixed-window request counter. The first hit in a
// window creates the counter with a TTL; requests beyond Limit within the
// same window are rejected.
type WindowLimiter struct {
	Client *redis.Client
	Limit  int
	Window time.Duration
}

func NewWindowLimiter(client *redis.Client, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{Client: client, Limit: limit, Window: window}
}

func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	secs := int64(l.Window.Seconds())
	if secs < 1 {
		secs = 1
	}
	bucket := time.Now().Unix() / secs
	k := "ratelimit:" + key + ":" + strconv.FormatInt(bucket, 10)
	n, err := l.Client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := l.Client.Expire(ctx, k, l.Window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(l.Limit), nil
}
