package domain

import "errors"

// Error kinds surfaced by the service layer. The HTTP edge maps them
// to envelope codes; callers test with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)
