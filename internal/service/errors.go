package service

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses; anything else is a
// generic internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
