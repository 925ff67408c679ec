package service

import "errors"

var (
	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. Callers get the same error for both.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated is returned when no valid session exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrDuplicateUser is returned on registration when the username or
	// email is already taken.
	ErrDuplicateUser = errors.New("username or email already in use")

	// ErrNotFound is returned when the requested expense does not exist.
	ErrNotFound = errors.New("expense not found")

	// ErrForbidden is returned when an expense belongs to a different user.
	ErrForbidden = errors.New("expense belongs to another user")
)

// ValidationError reports invalid user input. The message is safe to show
// to the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidInput(msg string) error {
	return &ValidationError{Message: msg}
}
