package domain

import "errors"

// Usecases wrap these with a human message: fmt.Errorf("%w: ...", ErrX).
// The HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrHasChildren        = errors.New("has dependent records")
	ErrInvalidInput       = errors.New("invalid input")
	ErrParentNotFound     = errors.New("parent not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)
