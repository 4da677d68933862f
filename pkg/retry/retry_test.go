package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fast(opts ...Option) *Retrier {
	return New(append([]Option{WithInitialDelay(time.Millisecond), WithJitter(0)}, opts...)...)
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	var calls, retries int
	err := fast(WithOnRetry(func(int, error, time.Duration) { retries++ })).Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, retries)
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := fast(WithMaxAttempts(2)).Do(context.Background(), func(context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	closed := errors.New("closed")
	calls := 0
	err := fast().Do(context.Background(), func(context.Context) error {
		calls++
		return Permanent(closed)
	})

	assert.Equal(t, closed, err)
	assert.Equal(t, 1, calls)
	assert.Nil(t, Permanent(nil))
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fast().Do(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelay_Capped(t *testing.T) {
	r := New(WithInitialDelay(time.Second), WithJitter(0))
	assert.Equal(t, time.Second, r.delay(1))
	assert.Equal(t, 4*time.Second, r.delay(3))
	assert.Equal(t, 5*time.Second, r.delay(10))
}
