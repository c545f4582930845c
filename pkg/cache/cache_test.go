package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock управляемые часы для тестов TTL
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestValue_EmptyCache(t *testing.T) {
	v := NewValue[string](time.Minute)

	_, ok := v.Get()
	assert.False(t, ok)

	_, ok = v.GetStale()
	assert.False(t, ok)
}

func TestValue_FreshValue(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	v := NewValueWithClock[[]int](time.Minute, clock)

	v.Set([]int{1, 2, 3})

	got, ok := v.Get()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestValue_ExpiredValue(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	v := NewValueWithClock[string](time.Minute, clock)

	v.Set("cached")
	clock.advance(time.Minute + time.Second)

	_, ok := v.Get()
	assert.False(t, ok)

	// Протухшее значение остаётся доступным как fallback
	stale, ok := v.GetStale()
	require.True(t, ok)
	assert.Equal(t, "cached", stale)
}

func TestValue_ExactTTLBoundary(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	v := NewValueWithClock[string](time.Minute, clock)

	v.Set("cached")
	clock.advance(time.Minute)

	// Ровно TTL ещё не протухло
	_, ok := v.Get()
	assert.True(t, ok)
}

func TestValue_SetRefreshesTimestamp(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	v := NewValueWithClock[string](time.Minute, clock)

	v.Set("old")
	clock.advance(2 * time.Minute)
	v.Set("new")

	got, ok := v.Get()
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestValue_Invalidate(t *testing.T) {
	v := NewValue[string](time.Minute)

	v.Set("cached")
	v.Invalidate()

	_, ok := v.Get()
	assert.False(t, ok)

	_, ok = v.GetStale()
	assert.False(t, ok)
}
