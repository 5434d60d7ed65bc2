package client

import "github.com/spetersoncode/switchboard/internal/retry"

// RetryConfig holds retry classification data and backoff hints.
type RetryConfig = retry.Config

// DefaultRetryConfig returns the default retry configuration.
//   - 10 max attempts
//   - 1 second initial delay
//   - 60 second max delay
//   - 2x exponential multiplier
//   - 10% jitter
//   - 408, 429, 500, 502, 503, 504, 520, 522 and 529 are transient
func DefaultRetryConfig() RetryConfig {
	return retry.DefaultConfig()
}

// DisabledRetryConfig returns a configuration suggesting a single attempt.
func DisabledRetryConfig() RetryConfig {
	return retry.Disabled()
}

// Classify wraps err into a categorized *switchboard.Error using cfg.
// A nil cfg uses DefaultRetryConfig.
func Classify(err error, cfg *RetryConfig) error {
	return retry.Classify(err, cfg)
}

// IsTransientError determines if an error is transient and should be retried.
// It checks for rate limits, server errors, network timeouts, and connection issues.
func IsTransientError(err error) bool {
	return retry.IsTransient(err)
}
