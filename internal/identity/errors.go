package identity

import "errors"

var (
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailAlreadyInUse is returned by SignUp when an account with the
	// given email already exists.
	ErrEmailAlreadyInUse = errors.New("email address is already in use")
)
