package utils

import "github.com/google/uuid"

// NewID returns a random UUID v4 string used as a record id.
func NewID() string { return uuid.NewString() }
