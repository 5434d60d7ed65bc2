package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	sb "github.com/spetersoncode/switchboard"
)

// statusCoder is an interface for errors that expose an HTTP status code.
type statusCoder interface {
	StatusCode() int
}

// Classify wraps err into a *switchboard.Error whose category tells the caller
// whether re-invoking the same operation may succeed.
//
// The result carries the original error as its cause, the HTTP status code and
// any server-suggested Retry-After delay. Classify returns nil for a nil error,
// has no side effects and is safe for concurrent use. Classifying an already
// classified error does not nest it. A nil cfg uses DefaultConfig.
func Classify(err error, cfg *Config) error {
	if err == nil {
		return nil
	}
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}

	code := statusCodeOf(err)
	cat := categorize(err, code, cfg)

	if prev, ok := err.(*sb.Error); ok {
		if prev.Cat == cat {
			return prev
		}
		out := *prev
		out.Cat = cat
		return &out
	}

	return &sb.Error{
		Msg:        string(cat) + " error",
		Cat:        cat,
		Code:       code,
		RetryDelay: sb.RetryAfterOf(err),
		Cause:      err,
	}
}

// IsTransient reports whether err is retryable under DefaultConfig.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return sb.IsTransient(Classify(err, nil))
}

// categorize determines the category of err.
// Status codes take precedence over error categories assigned by backends so
// that cfg.RetryStatusCodes is authoritative.
func categorize(err error, code int, cfg *Config) sb.ErrorCategory {
	switch {
	case errors.Is(err, context.Canceled):
		return sb.ErrorPermanent
	case code > 0:
		return categorizeStatusCode(code, cfg)
	case errors.Is(err, context.DeadlineExceeded):
		return sb.ErrorTransient
	case errors.Is(err, sb.ErrTooManyRedirects):
		return sb.ErrorPermanent
	}

	if cat := sb.CategoryOf(err); cat != "" {
		return cat
	}
	if isTransientNetworkError(err) {
		return sb.ErrorTransient
	}
	return sb.ErrorPermanent
}

// categorizeStatusCode determines the error category from an HTTP status code.
func categorizeStatusCode(code int, cfg *Config) sb.ErrorCategory {
	switch {
	case cfg.IsRetryableStatus(code):
		return sb.ErrorTransient
	case code == 401 || code == 403:
		return sb.ErrorPermanent // Authentication/authorization
	case code == 400 || code == 404 || code == 413 || code == 422:
		return sb.ErrorUserInput // Bad request, unknown model, oversized context
	default:
		return sb.ErrorPermanent
	}
}

func statusCodeOf(err error) int {
	if code := sb.StatusCodeOf(err); code > 0 {
		return code
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// isTransientNetworkError checks for network-level transient errors.
func isTransientNetworkError(err error) bool {
	// A stream cut off mid-body
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// Check for timeout errors
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Check for URL errors (wrapping network errors)
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	// Temporary DNS failures are retryable
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	// Check for syscall errors (connection reset, etc.)
	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET, // Connection reset by peer
			syscall.ECONNREFUSED, // Connection refused
			syscall.ETIMEDOUT:    // Connection timed out
			return true
		}
	}

	// Check for common error message patterns (fallback)
	errMsg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset",
		"connection refused",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"rate limit",
		"server error",
		"bad gateway",
		"gateway timeout",
		"overloaded",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
