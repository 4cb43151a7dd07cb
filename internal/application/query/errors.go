package query

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures raised by the pipeline.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindLoad
	KindNotFound
	KindCache
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindLoad:
		return "load"
	case KindNotFound:
		return "not_found"
	case KindCache:
		return "cache"
	case KindTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// AppError is the failure every stage raises. It is immutable once created.
type AppError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(format string, args ...any) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: http.StatusBadRequest,
	}
}

func LoadError(message string, err error) *AppError {
	return &AppError{
		Kind:       KindLoad,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// NotFoundError is raised by the executor; status falls back to 404.
func NotFoundError(status int, message string) *AppError {
	if status == 0 {
		status = http.StatusNotFound
	}
	return &AppError{
		Kind:       KindNotFound,
		Message:    message,
		StatusCode: status,
	}
}

// CacheError wraps a cache transport failure. It never reaches a client.
func CacheError(op string, err error) *AppError {
	return &AppError{
		Kind:       KindCache,
		Message:    "cache " + op + " failed",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// TimeoutError reports a request that ran out of time waiting on storage or cache.
func TimeoutError(err error) *AppError {
	return &AppError{
		Kind:       KindTimeout,
		Message:    "request timed out",
		StatusCode: http.StatusGatewayTimeout,
		Err:        err,
	}
}

// StatusOf maps err to an HTTP status code, defaulting to 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message of err. Anything that is not an
// AppError is reported generically.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal && appErr.Kind != KindCache {
		return appErr.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
