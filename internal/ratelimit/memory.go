package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory keeps the window counters in process. Call Stop on shutdown.
type Memory struct {
	rules    []Rule
	counters sync.Map // map[string]*window
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type window struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// NewMemory creates a limiter with background cleanup of expired windows.
func NewMemory(rules []Rule, cleanupInterval time.Duration) *Memory {
	m := &Memory{
		rules: rules,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.cleanup(cleanupInterval)
	}
	return m
}

// Stop terminates the background cleanup goroutine.
func (m *Memory) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()
	dec := Decision{Allowed: true, Remaining: -1}
	for _, r := range m.rules {
		val, _ := m.counters.LoadOrStore(ruleKey(key, r), &window{})
		w := val.(*window)
		count, resetAt := w.hit(now, r.Window)
		if count > r.Limit {
			return Decision{
				Allowed:    false,
				Rule:       r,
				Remaining:  0,
				RetryAfter: resetAt.Sub(now),
			}, nil
		}
		if left := r.Limit - count; dec.Remaining < 0 || left < dec.Remaining {
			dec.Remaining = left
		}
	}
	return dec, nil
}

// hit counts one request; the window opens at the first hit after the
// previous one expired.
func (w *window) hit(now time.Time, length time.Duration) (int, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !now.Before(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(length)
	}
	w.count++
	return w.count, w.resetAt
}

func (m *Memory) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			now := m.now()
			m.counters.Range(func(key, value any) bool {
				w := value.(*window)
				w.mu.Lock()
				expired := !now.Before(w.resetAt)
				w.mu.Unlock()
				if expired {
					m.counters.Delete(key)
				}
				return true
			})
		}
	}
}
