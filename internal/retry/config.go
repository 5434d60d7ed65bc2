// Package retry classifies failures as retryable or fatal.
//
// It performs no retries itself. Config carries the classification data
// (which HTTP status codes count as transient) together with backoff hints a
// caller's own retry loop may use.
package retry

import (
	"math"
	"math/rand"
	"slices"
	"time"
)

// Config holds retry classification data and backoff hints.
// A Config is shared read-only by every call of one client.
type Config struct {
	// MaxAttempts is the suggested maximum number of attempts (default: 10).
	// The initial request counts as attempt 1.
	MaxAttempts int `mapstructure:"max_attempts"`

	// InitialDelay is the suggested base delay before the first retry (default: 1s).
	InitialDelay time.Duration `mapstructure:"initial_delay"`

	// MaxDelay is the suggested maximum delay between retries (default: 60s).
	MaxDelay time.Duration `mapstructure:"max_delay"`

	// Multiplier is the exponential backoff multiplier (default: 2.0).
	Multiplier float64 `mapstructure:"multiplier"`

	// Jitter adds randomness to prevent thundering herd (default: 0.1 = 10%).
	// Delay is multiplied by (1 + random(-jitter, +jitter)).
	Jitter float64 `mapstructure:"jitter"`

	// RetryStatusCodes lists the HTTP status codes classified as transient.
	RetryStatusCodes []int `mapstructure:"retry_status_codes"`
}

// DefaultStatusCodes are the HTTP status codes classified as transient by default.
// 529 is Anthropic's "overloaded" status; 520 and 522 come from CDNs in front
// of OpenAI-compatible routers.
var DefaultStatusCodes = []int{408, 429, 500, 502, 503, 504, 520, 522, 529}

// DefaultConfig returns the default retry configuration.
// - 10 max attempts
// - 1 second initial delay
// - 60 second max delay
// - 2x exponential multiplier
// - 10% jitter
// - DefaultStatusCodes
func DefaultConfig() Config {
	return Config{
		MaxAttempts:      10,
		InitialDelay:     1 * time.Second,
		MaxDelay:         60 * time.Second,
		Multiplier:       2.0,
		Jitter:           0.1,
		RetryStatusCodes: slices.Clone(DefaultStatusCodes),
	}
}

// Disabled returns a configuration that suggests a single attempt.
// Classification still uses DefaultStatusCodes.
func Disabled() Config {
	return Config{MaxAttempts: 1, RetryStatusCodes: slices.Clone(DefaultStatusCodes)}
}

// IsRetryableStatus reports whether code is listed in RetryStatusCodes.
func (c Config) IsRetryableStatus(code int) bool {
	return slices.Contains(c.RetryStatusCodes, code)
}

// Delay calculates the suggested delay for a given attempt number (0-indexed).
// Formula: min(maxDelay, initialDelay * multiplier^attempt) * (1 + jitter)
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	// Apply jitter: random value in range [-jitter, +jitter]
	if c.Jitter > 0 {
		jitterFactor := 1.0 + (rand.Float64()*2-1)*c.Jitter
		delay *= jitterFactor
	}

	return time.Duration(delay)
}
