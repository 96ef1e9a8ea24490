package types

import "github.com/pkg/errors"

var (
	// ErrGridFull is returned when no free cell is left for a spawn
	ErrGridFull = errors.New("grid full: no free cell left")
	// ErrInvalidIndex is returned when a food index no longer exists
	ErrInvalidIndex = errors.New("invalid food index")
	// ErrInvalidState is returned for operations that do not apply in the current phase
	ErrInvalidState = errors.New("invalid state transition")
	// ErrInvalidConfig is returned for rejected configuration values
	ErrInvalidConfig = errors.New("invalid configuration")
)
