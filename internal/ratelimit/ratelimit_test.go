package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	rules, err := ParseRules("100/day, 20/hour")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, 100, rules[0].Limit)
	assert.Equal(t, 24*time.Hour, rules[0].Window)
	assert.Equal(t, 20, rules[1].Limit)
	assert.Equal(t, time.Hour, rules[1].Window)
	assert.Equal(t, "20 per hour", rules[1].String())
}

func TestParseRules_Invalid(t *testing.T) {
	for _, raw := range []string{"", "100", "x/day", "0/day", "-1/hour", "5/fortnight", " , "} {
		_, err := ParseRules(raw)
		assert.Error(t, err, raw)
	}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestMemory(raw string) (*Memory, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory(MustParseRules(raw), 0)
	m.now = clock.now
	return m, clock
}

func TestMemory_HourlyLimit(t *testing.T) {
	m, _ := newTestMemory(DefaultRules)
	defer m.Stop()
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		d, err := m.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d should be allowed", i)
	}
	d, err := m.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Hour, d.Rule.Window)
	assert.Equal(t, time.Hour, d.RetryAfter)
}

func TestMemory_Remaining(t *testing.T) {
	m, _ := newTestMemory(DefaultRules)
	defer m.Stop()

	d, err := m.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 19, d.Remaining)
}

func TestMemory_WindowResets(t *testing.T) {
	m, clock := newTestMemory("2/minute")
	defer m.Stop()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, _ := m.Allow(ctx, "k")
		assert.True(t, d.Allowed)
	}
	clock.advance(30 * time.Second)
	d, _ := m.Allow(ctx, "k")
	assert.False(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.RetryAfter)

	clock.advance(30 * time.Second)
	d, _ = m.Allow(ctx, "k")
	assert.True(t, d.Allowed)
}

func TestMemory_DailyLimitAcrossHours(t *testing.T) {
	m, clock := newTestMemory("3/day,2/hour")
	defer m.Stop()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, _ := m.Allow(ctx, "k")
		assert.True(t, d.Allowed)
	}
	clock.advance(time.Hour)
	d, _ := m.Allow(ctx, "k")
	assert.True(t, d.Allowed)

	d, _ = m.Allow(ctx, "k")
	assert.False(t, d.Allowed)
	assert.Equal(t, 24*time.Hour, d.Rule.Window)
}

func TestMemory_KeysIndependent(t *testing.T) {
	m, _ := newTestMemory("1/hour")
	defer m.Stop()
	ctx := context.Background()

	d, _ := m.Allow(ctx, "a")
	assert.True(t, d.Allowed)
	d, _ = m.Allow(ctx, "a")
	assert.False(t, d.Allowed)
	d, _ = m.Allow(ctx, "b")
	assert.True(t, d.Allowed)
}

func TestMemory_Concurrent(t *testing.T) {
	m, _ := newTestMemory("50/hour")
	defer m.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, _ := m.Allow(context.Background(), "k")
			if d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestMemory_CleanupRemovesExpired(t *testing.T) {
	m := NewMemory(MustParseRules("5/second"), 10*time.Millisecond)
	defer m.Stop()

	_, _ = m.Allow(context.Background(), "k")
	assert.Eventually(t, func() bool {
		n := 0
		m.counters.Range(func(_, _ any) bool { n++; return true })
		return n == 0
	}, 3*time.Second, 20*time.Millisecond)
}
