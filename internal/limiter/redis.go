package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares fixed windows between API instances. Each window is
// one counter key that expires with the window.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) (*RedisLimiter, error) {
	if err := checkParams(limit, window); err != nil {
		return nil, err
	}
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := r.windowKey(key)

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(windowKey).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", windowKey, err)
	}

	if count == 1 {
		cmd := r.client.B().Pexpire().Key(windowKey).Milliseconds(r.window.Milliseconds()).Build()
		if err := r.client.Do(ctx, cmd).Error(); err != nil {
			return false, fmt.Errorf("pexpire %s: %w", windowKey, err)
		}
	}

	return count <= int64(r.limit), nil
}

func (r *RedisLimiter) windowKey(key string) string {
	window := r.now().UnixMilli() / r.window.Milliseconds()
	return fmt.Sprintf("%s:%s:%d", r.prefix, key, window)
}
