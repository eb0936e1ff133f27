package utils

import "github.com/google/uuid"

// NewID generates a record identifier (uuid v4 string).
func NewID() string { return uuid.NewString() }
