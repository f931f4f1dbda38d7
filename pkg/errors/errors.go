package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType is the coarse category reported in the "type" field of error bodies
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeRateLimit    ErrorType = "RATE_LIMIT"
	ErrorTypeInternal     ErrorType = "INTERNAL"
	ErrorTypeStorage      ErrorType = "STORAGE"
	ErrorTypePublish      ErrorType = "PUBLISH"
)

// Codes for soft limits rejected at the API boundary
const (
	CodeNodeLimit     = "NODE_LIMIT"
	CodeDepthLimit    = "DEPTH_LIMIT"
	CodeNameTooLong   = "NAME_TOO_LONG"
	CodeUnknownConfig = "UNKNOWN_NODE_TYPE"
)

// AppError carries everything the error handler needs to answer a request
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
	HTTPStatus int                    `json:"-"`
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	if e.Code != "" {
		b.WriteString("/" + e.Code)
	}
	b.WriteString(": " + e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCode sets the machine readable code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails replaces the details map
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithDetail adds one detail entry
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

func newAppError(typ ErrorType, status int, message string) *AppError {
	return &AppError{
		Type:       typ,
		Message:    message,
		HTTPStatus: status,
		StackTrace: stackTrace(3),
	}
}

// stackTrace renders the caller frames starting skip levels up
func stackTrace(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return b.String()
}

func NewValidationError(message string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message)
}

// NewLimitError reports a request that would push an entity past a soft limit
func NewLimitError(code string, limit int, message string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message).
		WithCode(code).
		WithDetail("limit", limit)
}

// NewNotFoundError creates "<resource> not found"
func NewNotFoundError(resource string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, resource+" not found")
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message)
}

func NewRateLimitError(limit int, window string) *AppError {
	return newAppError(ErrorTypeRateLimit, http.StatusTooManyRequests,
		fmt.Sprintf("rate limit exceeded: %d requests per %s", limit, window)).
		WithDetail("limit", limit)
}

func NewInternalError(message string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message)
}

// NewStorageError wraps a failed snapshot read or write on a backend
func NewStorageError(backend, op, slot string, err error) *AppError {
	return newAppError(ErrorTypeStorage, http.StatusInternalServerError,
		fmt.Sprintf("%s %s %s failed", backend, op, slot)).
		WithCause(err).
		WithDetail("slot", slot)
}

// NewPublishError wraps a failed delivery to an event sink
func NewPublishError(sink string, err error) *AppError {
	return newAppError(ErrorTypePublish, http.StatusBadGateway,
		fmt.Sprintf("publish to %s failed", sink)).
		WithCause(err)
}

// GetAppError returns the first AppError in err's chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsNotFound(err error) bool   { return IsType(err, ErrorTypeNotFound) }
func IsValidation(err error) bool { return IsType(err, ErrorTypeValidation) }

// HasCode reports whether err carries an AppError with the given code
func HasCode(err error, code string) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// Wrap prefixes the message of an AppError, or turns any other error into an
// internal one caused by err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = message + ": " + appErr.Message
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}
