package model

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for workshops, days and items.
func NewID() string {
	return uuid.NewString()
}
