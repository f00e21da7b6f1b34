package domain

import "errors"

var (
	ErrInvalidInterval = errors.New("interval start must be before end")

	// Lifecycle state machine violations.
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrAlreadyFinalized  = errors.New("reservation already finalized")
)
