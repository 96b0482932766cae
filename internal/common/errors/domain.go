package commonerrors

import (
	"errors"
	"fmt"
)

type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "VALIDATION"
	CategoryNotFound   ErrorCategory = "NOT_FOUND"
	CategoryInternal   ErrorCategory = "INTERNAL"
	CategoryExternal   ErrorCategory = "EXTERNAL"
	CategoryRateLimit  ErrorCategory = "RATE_LIMIT"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	TraceID() string
	Unwrap() error
	WithCause(cause error) DomainError
	WithTraceID(traceID string) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	traceID  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) TraceID() string {
	return e.traceID
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches any domain error carrying the same code, so copies made by
// WithCause and WithTraceID still satisfy errors.Is against the sentinel.
func (e *domainError) Is(target error) bool {
	var other *domainError
	if !errors.As(target, &other) {
		return false
	}
	return e.code == other.code
}

func (e *domainError) WithCause(cause error) DomainError {
	cp := *e
	cp.cause = cause
	return &cp
}

func (e *domainError) WithTraceID(traceID string) DomainError {
	cp := *e
	cp.traceID = traceID
	return &cp
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
