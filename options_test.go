package reduce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAsyncOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyAsyncOptions()
		assert.NotNil(t, opts)
		assert.Nil(t, opts.Condition)
		assert.Nil(t, opts.Retry)
		assert.Nil(t, opts.IDGenerator)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		opts := ApplyAsyncOptions(
			WithCondition(func(any, func() any) bool { return false }),
			WithRetry(DefaultRetryConfig()),
			WithIDGenerator(func() string { return "id" }),
		)

		require.NotNil(t, opts.Condition)
		assert.False(t, opts.Condition(nil, nil))
		require.NotNil(t, opts.Retry)
		assert.Equal(t, 3, opts.Retry.MaxAttempts)
		assert.Equal(t, "id", opts.IDGenerator())
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		opts := ApplyAsyncOptions(
			WithRetry(DefaultRetryConfig()),
			WithRetry(DisabledRetryConfig()),
		)

		require.NotNil(t, opts.Retry)
		assert.Equal(t, 1, opts.Retry.MaxAttempts)
	})
}

func TestRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)
	assert.Equal(t, 0.1, cfg.Jitter)
	assert.Equal(t, cfg, RetryConfig(cfg.internal()))
}
