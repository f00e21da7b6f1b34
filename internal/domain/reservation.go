package domain

import "time"

// ReservationStatus values are persisted verbatim.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationCheckedIn ReservationStatus = "CHECKED_IN"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

// ReservationType distinguishes online bookings from walk-ins created by staff.
type ReservationType string

const (
	ReservationOnline ReservationType = "ONLINE"
	ReservationWalkIn ReservationType = "WALK_IN"
)

// Reservation holds one seat for one time window. UserID is zero for walk-ins;
// customer name/phone are denormalized so walk-ins need no user record.
// Reservations are never deleted by ordinary flow: cancellation and no-show are
// terminal statuses, not deletions.
type Reservation struct {
	ID            int64             `json:"id" gorm:"primaryKey"`
	SeatID        int64             `json:"seat_id" gorm:"index" validate:"required"`
	MerchantID    int64             `json:"merchant_id" gorm:"index" validate:"required"`
	UserID        int64             `json:"user_id,omitempty"`
	StartTime     time.Time         `json:"start_time" validate:"required"`
	EndTime       time.Time         `json:"end_time" validate:"required"`
	Guests        int               `json:"guests" validate:"gte=1"`
	Tables        int               `json:"tables,omitempty"`
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
	Note          string            `json:"note,omitempty" gorm:"type:text"`
	Type          ReservationType   `json:"type"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Seat *Seat `json:"seat,omitempty" gorm:"foreignKey:SeatID"`
}

// Active reports whether the reservation counts toward conflict checks.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationCheckedIn
}

// Terminal reports whether no further transitions are permitted.
func (s ReservationStatus) Terminal() bool {
	switch s {
	case ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// ReleasesSeat reports whether entering this status hands the seat back to the
// pool. Check-in keeps the seat held; every terminal status releases it.
func (s ReservationStatus) ReleasesSeat() bool {
	return s.Terminal()
}

// CanTransition validates a status change against the lifecycle table:
//
//	PENDING    -> CHECKED_IN | CANCELLED | NO_SHOW
//	CHECKED_IN -> COMPLETED
//
// A terminal current status always fails with ErrAlreadyFinalized; any other
// pair outside the table fails with ErrInvalidTransition. Completing straight
// from PENDING (skipping check-in) is deliberately illegal.
func CanTransition(from, to ReservationStatus) error {
	if from.Terminal() {
		return ErrAlreadyFinalized
	}
	switch from {
	case ReservationPending:
		if to == ReservationCheckedIn || to == ReservationCancelled || to == ReservationNoShow {
			return nil
		}
	case ReservationCheckedIn:
		if to == ReservationCompleted {
			return nil
		}
	}
	return ErrInvalidTransition
}

// Interval returns the reservation's booked window.
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartTime, End: r.EndTime}
}
