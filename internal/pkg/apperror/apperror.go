package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure independently of the transport.
type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindAccessDenied
	KindConflict
	KindNotAvailable
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindConflict:
		return "conflict"
	case KindNotAvailable:
		return "not_available"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to the status code returned to clients.
// Access denial is reported as 404 so callers cannot probe for resources they are not related to.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound, KindAccessDenied:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindNotAvailable, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a classified error with a user-facing message.
type AppError struct {
	Kind    Kind   // Failure class, decides the HTTP status
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the HTTP status code for the error.
func (e *AppError) Code() int {
	return e.Kind.HTTPStatus()
}

// Withf returns a copy of e carrying a more specific message.
// errors.Is(copy, e) still reports true.
func (e *AppError) Withf(format string, args ...any) *AppError {
	return &AppError{
		Kind:    e.Kind,
		Message: fmt.Sprintf(format, args...),
		Err:     e,
	}
}

// New creates a new AppError with a kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// KindOf reports the kind of the outermost AppError in err's chain,
// or KindInternal if there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
