package schedule

import "errors"

var (
	ErrValidation = errors.New("validation error")

	// ErrNoAvailability means every seat in the zone (or a zone with no
	// seats) conflicts with the requested window at resolution time.
	ErrNoAvailability = errors.New("no seat available for the requested window")

	ErrForbidden = errors.New("forbidden")
)
