package retry

import (
	"net/http"
	"strconv"
	"time"

	sb "github.com/spetersoncode/switchboard"
)

// FromStatus builds the error for a failed provider response. It carries the
// status code and any Retry-After delay, categorized under DefaultConfig; a
// client with its own Config re-classifies it.
func FromStatus(msg string, code int, resp *http.Response, cause error) error {
	return Classify(&sb.Error{
		Msg:        msg,
		Code:       code,
		RetryDelay: ParseRetryAfter(resp),
		Cause:      cause,
	}, nil)
}

// ParseRetryAfter extracts the Retry-After duration from an HTTP response.
// Returns 0 if the header is not present or cannot be parsed.
func ParseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	// Try parsing as seconds (most common)
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP-date (RFC 7231)
	if t, err := http.ParseTime(header); err == nil {
		delay := time.Until(t)
		if delay > 0 {
			return delay
		}
	}

	return 0
}
