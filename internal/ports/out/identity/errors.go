package identity

import "errors"

var (
	// ErrInvalidToken indicates the provider rejected the bearer credential.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrEmailExists indicates an account already exists for the address.
	ErrEmailExists = errors.New("email already registered")

	// ErrUserNotFound indicates the requested account does not exist.
	ErrUserNotFound = errors.New("user not found")
)
