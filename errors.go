package mailroute

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory classifies provider errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates a temporary failure that can be retried.
	// Examples: rate limits, server overload, dropped connections.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates a failure that retrying will not fix.
	// Examples: invalid API key, unknown model.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput indicates the request itself was rejected.
	// Examples: malformed request, content policy violation.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that carries handling metadata.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int           // HTTP status code if applicable, 0 otherwise
	RetryAfter() time.Duration // server-suggested retry delay, 0 if not available
}

// Error is a categorized provider error.
type Error struct {
	Msg        string
	Cat        ErrorCategory
	Code       int           // HTTP status code, 0 if not applicable
	RetryDelay time.Duration // from Retry-After header, 0 if not available
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Msg {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Category returns the error category.
func (e *Error) Category() ErrorCategory { return e.Cat }

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int { return e.Code }

// RetryAfter returns the suggested retry delay, or 0 if not available.
func (e *Error) RetryAfter() time.Duration { return e.RetryDelay }

// NewError creates a categorized error.
func NewError(cat ErrorCategory, msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: cat, Code: statusCode, Cause: cause}
}

// CategorizeStatus maps an HTTP status code onto an error category.
func CategorizeStatus(code int) ErrorCategory {
	switch {
	case code == 429:
		return ErrorTransient
	case code >= 500 && code < 600:
		return ErrorTransient
	case code == 400 || code == 404 || code == 422:
		return ErrorUserInput
	default:
		return ErrorPermanent
	}
}

// CategoryOf returns the category of the first CategorizedError in err's
// chain, and false if there is none.
func CategoryOf(err error) (ErrorCategory, bool) {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category(), true
	}
	return "", false
}

// IsTransient returns true if err is categorized as transient.
func IsTransient(err error) bool {
	cat, ok := CategoryOf(err)
	return ok && cat == ErrorTransient
}

// RetryAfterOf returns the retry delay from a categorized error, or 0.
func RetryAfterOf(err error) time.Duration {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.RetryAfter()
	}
	return 0
}

// GenerationError reports a failure of the text generation port.
// It covers provider and transport errors as well as structured responses
// that do not conform to the requested schema.
type GenerationError struct {
	Op  string // "generate" or "choose"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ErrNonConforming is wrapped by a GenerationError when a structured
// response is missing, malformed or outside the allowed values.
var ErrNonConforming = errors.New("response does not conform to schema")
