package switchboard

import (
	"errors"
	"fmt"
	"time"
)

// ErrTooManyRedirects is returned when a backend request exceeds the
// configured HTTPConfig.MaxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects")

// ErrorCategory tells the caller whether re-invoking the failed operation
// may succeed.
type ErrorCategory string

const (
	// ErrorTransient: rate limits, 5xx, timeouts and dropped connections.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent: rejected credentials, cancelled calls, anything unknown.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput: the request itself must change, e.g. an unknown model
	// or an oversized conversation.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is implemented by errors that carry a category.
type CategorizedError interface {
	error
	Category() ErrorCategory
	Retryable() bool
	StatusCode() int           // 0 without a response
	RetryAfter() time.Duration // 0 unless the server asked for a delay
}

// Error is the failure type of the client. Every failure of a runtime
// operation, including a failed stream item, is an *Error.
type Error struct {
	Msg        string
	Cat        ErrorCategory
	Code       int // HTTP status
	RetryDelay time.Duration
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// Retryable reports whether the category is ErrorTransient.
func (e *Error) Retryable() bool {
	return e.Cat == ErrorTransient
}

func (e *Error) StatusCode() int {
	return e.Code
}

func (e *Error) RetryAfter() time.Duration {
	return e.RetryDelay
}

// NewTransientError returns a transient *Error.
func NewTransientError(msg string, statusCode int, cause error) *Error {
	return &Error{
		Msg:   msg,
		Cat:   ErrorTransient,
		Code:  statusCode,
		Cause: cause,
	}
}

// NewPermanentError returns a permanent *Error.
func NewPermanentError(msg string, statusCode int, cause error) *Error {
	return &Error{
		Msg:   msg,
		Cat:   ErrorPermanent,
		Code:  statusCode,
		Cause: cause,
	}
}

// NewUserInputError returns an *Error for a request the caller must fix.
func NewUserInputError(msg string, statusCode int, cause error) *Error {
	return &Error{
		Msg:   msg,
		Cat:   ErrorUserInput,
		Code:  statusCode,
		Cause: cause,
	}
}

// IsTransient reports whether err, or an error it wraps, is transient.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// IsPermanent reports whether err is categorized as permanent.
func IsPermanent(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorPermanent
	}
	return false
}

// IsUserInput reports whether err is categorized as a user input error.
func IsUserInput(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorUserInput
	}
	return false
}

// CategoryOf returns the category of a categorized error, or "" if the error
// carries no category.
func CategoryOf(err error) ErrorCategory {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category()
	}
	return ""
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// RetryAfterOf returns the retry delay from a categorized error, or 0.
func RetryAfterOf(err error) time.Duration {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.RetryAfter()
	}
	return 0
}
