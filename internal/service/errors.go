package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrUserNotFound   = errors.New("user not found")
	ErrAlreadyGranted = errors.New("already granted")
	ErrInvalidInput   = errors.New("invalid input")
)

// ValidationError carries a message meant for the person who made the
// request, wrapped around one of the sentinels above so callers can still
// branch with errors.Is.
type ValidationError struct {
	Err     error
	Message string
}

// Error returns the client-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, message string) error {
	return &ValidationError{Err: err, Message: message}
}
