package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock считает вызовы Sleep без реального ожидания
type fakeClock struct {
	sleeps []time.Duration
	err    error
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	return c.err
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	clock := &fakeClock{}
	policy := Policy{MaxAttempts: 3, Delay: time.Second, Clock: clock}

	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.sleeps)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	clock := &fakeClock{}
	policy := Policy{MaxAttempts: 3, Delay: 500 * time.Millisecond, Clock: clock}

	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("temporary failure")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, clock.sleeps)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	clock := &fakeClock{}
	policy := Policy{MaxAttempts: 3, Delay: time.Second, Clock: clock}

	lastErr := errors.New("persistent failure")
	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return lastErr
	})

	assert.ErrorIs(t, err, lastErr)
	assert.Equal(t, 3, calls)
	// После последней попытки задержки нет
	assert.Len(t, clock.sleeps, 2)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := Policy{MaxAttempts: 3, Delay: time.Second, Clock: &fakeClock{}}

	calls := 0
	err := policy.Do(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("should not retry")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestDo_ContextCancelledDuringSleep(t *testing.T) {
	clock := &fakeClock{err: context.Canceled}
	policy := Policy{MaxAttempts: 3, Delay: time.Second, Clock: clock}

	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("failure")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_InvalidPolicy(t *testing.T) {
	policy := Policy{MaxAttempts: 0}

	err := policy.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not be called")
		return nil
	})

	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
