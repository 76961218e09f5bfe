package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares the window counters across instances. INCR creates
// the key at 1; the NX expire arms the window only on that first hit,
// so later hits in the same window never push the deadline out.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	k := fmt.Sprintf("%s:%s", s.Prefix, key)

	pipe := s.Client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}
