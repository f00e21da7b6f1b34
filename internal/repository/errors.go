package repository

import "errors"

var (
	ErrMerchantNotFound    = errors.New("merchant not found")
	ErrSeatNotFound        = errors.New("seat not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrSlotConflict means the commit-time re-check found an active
	// reservation overlapping the requested window on the chosen seat: the
	// caller lost a race after resolution. Distinct from "no availability"
	// so callers can decide between rerunning the resolver and giving up.
	ErrSlotConflict = errors.New("seat already reserved for an overlapping window")

	// ErrSeatsInUse blocks bulk seat replacement while active reservations
	// still reference the merchant's seats.
	ErrSeatsInUse = errors.New("merchant has active reservations on existing seats")
)
