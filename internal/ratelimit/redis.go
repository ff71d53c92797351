package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "dictproxy:ratelimit:"

// Redis shares the window counters between proxy instances. Each rule is
// one INCR'd key whose expiry is set on the first hit of the window.
type Redis struct {
	c      redis.UniversalClient
	rules  []Rule
	prefix string
}

func NewRedis(c redis.UniversalClient, rules []Rule, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Redis{c: c, rules: rules, prefix: prefix}
}

func (l *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	dec := Decision{Allowed: true, Remaining: -1}
	for _, r := range l.rules {
		count, ttl, err := l.hit(ctx, l.prefix+ruleKey(key, r), r.Window)
		if err != nil {
			return Decision{}, err
		}
		if count > int64(r.Limit) {
			return Decision{
				Allowed:    false,
				Rule:       r,
				Remaining:  0,
				RetryAfter: ttl,
			}, nil
		}
		if left := r.Limit - int(count); dec.Remaining < 0 || left < dec.Remaining {
			dec.Remaining = left
		}
	}
	return dec, nil
}

func (l *Redis) hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := l.c.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// NX keeps the expiry of an already open window
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("rate limit hit %s: %w", key, err)
	}
	remaining := ttl.Val()
	if remaining < 0 {
		remaining = window
	}
	return incr.Val(), remaining, nil
}
