// Package cache stores encoded lookup results for a short time so that
// repeated lookups of the same word skip the upstream dictionary.
package cache

import (
	"context"
	"time"
)

const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 100000
)

// Cache is safe for concurrent use. A miss is reported as ok == false with
// a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
