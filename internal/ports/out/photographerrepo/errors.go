package photographerrepo

import "errors"

var (
	// ErrNotFound indicates the requested profile does not exist.
	ErrNotFound = errors.New("photographer profile not found")

	// ErrAlreadyExists indicates a profile already exists for the user.
	ErrAlreadyExists = errors.New("photographer profile already exists")
)
