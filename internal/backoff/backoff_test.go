package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     time.Duration
		attempt  int
		expected time.Duration
	}{
		{name: "attempt 0 returns base", base: 100 * time.Millisecond, attempt: 0, expected: 100 * time.Millisecond},
		{name: "attempt 1 doubles base", base: 100 * time.Millisecond, attempt: 1, expected: 200 * time.Millisecond},
		{name: "attempt 3 is eightfold", base: 100 * time.Millisecond, attempt: 3, expected: 800 * time.Millisecond},
		{name: "negative attempt treated as zero", base: 50 * time.Millisecond, attempt: -5, expected: 50 * time.Millisecond},
		{name: "zero base returns zero", base: 0, attempt: 4, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Exponential(tt.base, tt.attempt))
		})
	}
}

func TestExponential_OverflowProtection(t *testing.T) {
	t.Parallel()

	result := Exponential(time.Hour, 100)
	assert.Positive(t, result)
}

func TestFullJitter(t *testing.T) {
	t.Parallel()

	delay := time.Second
	for i := 0; i < 50; i++ {
		jittered := FullJitter(delay)
		assert.GreaterOrEqual(t, jittered, time.Duration(0))
		assert.Less(t, jittered, delay)
	}

	assert.Equal(t, time.Duration(0), FullJitter(0))
	assert.Equal(t, time.Duration(0), FullJitter(-time.Second))
}

func TestSleepWithContext_Completes(t *testing.T) {
	t.Parallel()

	err := SleepWithContext(context.Background(), time.Millisecond)
	require.NoError(t, err)
}

func TestSleepWithContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := SleepWithContext(ctx, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleepWithContext_ZeroDuration(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Zero duration returns before consulting the context.
	assert.NoError(t, SleepWithContext(ctx, 0))
}
