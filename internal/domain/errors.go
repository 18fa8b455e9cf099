package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrSessionConflict  = errors.New("another cooking session is already in progress")
	ErrNoSteps          = errors.New("recipe has no steps")
	ErrInvalidDuration  = errors.New("step duration must be a positive number of minutes")
	ErrChimeUnavailable = errors.New("audio output unavailable")
)
