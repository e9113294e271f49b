package core

import "github.com/google/uuid"

// NewID generates a unique identifier for cells and simulation runs.
func NewID() string { return uuid.NewString() }
