package reduce

import (
	"time"

	"github.com/spetersoncode/reduce/internal/retry"
)

// RetryConfig controls how an async thunk retries transient failures of its payload creator.
// Use DefaultRetryConfig() for sensible defaults or create custom configs.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (default: 3).
	// The initial call counts as attempt 1.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry (default: 100ms).
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries (default: 5s).
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier (default: 2.0).
	Multiplier float64

	// Jitter adds randomness to prevent thundering herd (default: 0.1 = 10%).
	Jitter float64
}

// DefaultRetryConfig returns the default retry configuration.
//   - 3 max attempts
//   - 100 millisecond initial delay
//   - 5 second max delay
//   - 2x exponential multiplier
//   - 10% jitter
func DefaultRetryConfig() RetryConfig {
	return RetryConfig(retry.DefaultConfig())
}

// DisabledRetryConfig returns a configuration that disables retries (single attempt).
func DisabledRetryConfig() RetryConfig {
	return RetryConfig(retry.Disabled())
}

func (c RetryConfig) internal() retry.Config {
	return retry.Config(c)
}
