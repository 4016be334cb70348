package engine

import "errors"

var (
	// ErrInvalidPlacement is returned when a ship cannot be placed
	ErrInvalidPlacement = errors.New("invalid ship placement")

	// ErrInvalidAdvance is returned when the phase cannot be advanced
	ErrInvalidAdvance = errors.New("invalid phase advance")

	// ErrInvalidMissile is returned when a missile cannot be fired at the target
	ErrInvalidMissile = errors.New("invalid missile fire attempt")

	// ErrInternal marks an engine bug rather than caller misuse
	ErrInternal = errors.New("internal engine error")
)
