package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key violation")
	ErrInvalidID          = errors.New("invalid ID format")
	ErrModelNotCalibrated = errors.New("no calibrated model weights available")
)

// ValidationError reports a rejected input field during FighterStats
// construction. It is terminal for the call; nothing is retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid stat field %q: %s", e.Field, e.Reason)
}
