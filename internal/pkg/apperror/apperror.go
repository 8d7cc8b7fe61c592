// Package apperror defines the error kinds shared by the gallery domains.
//
// Domain packages declare their own sentinels with NotFound, Validation or
// Conflict; callers branch on the kind with errors.Is(err, apperror.ErrNotFound)
// and on the exact sentinel when they need to.
package apperror

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// Error is a client-facing message tagged with one of the kinds above
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound creates an error of kind ErrNotFound
func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Validation creates an error of kind ErrValidation
func Validation(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

// Conflict creates an error of kind ErrConflict
func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Message returns the client-facing message of the first *Error in the chain,
// or fallback when there is none.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
