package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a failure for the HTTP surface. Validation and not-found
// are detected before any external call; upstream marks an AI reply that
// failed parsing or schema checks; everything else is internal.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUpstream
)

// AppError is the error services hand to controllers. Message is safe to
// expose; Err carries the original cause for logging only.
type AppError struct {
	Kind      Kind
	Message   string
	RequestId string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func UpstreamError(message string) *AppError {
	return &AppError{Kind: KindUpstream, Message: message}
}

func InternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// StatusOf maps an error to its HTTP status. Unknown errors are internal.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case KindValidation:
			return fiber.StatusBadRequest
		case KindNotFound:
			return fiber.StatusNotFound
		case KindUpstream:
			return fiber.StatusBadGateway
		}
	}
	return fiber.StatusInternalServerError
}

// SafeMessage returns the caller-facing message, hiding causes of errors
// that never went through the taxonomy.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Unexpected internal error"
}

// RequestIdOf returns the correlation id attached to the error, if any.
func RequestIdOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.RequestId
	}
	return ""
}
