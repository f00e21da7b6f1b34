package schedule

import (
	"context"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

// MerchantRepository is the slice of merchant storage the engine needs.
type MerchantRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// SeatRepository exposes the seat pool to the conflict resolver.
type SeatRepository interface {
	SeatsInZone(ctx context.Context, merchantID int64, zone string) ([]domain.Seat, error)
}

// ReservationRepository is the persistence collaborator of the booking
// transaction and the lifecycle state machine. CreateAtomic and Transition
// must each run as a single atomic unit of work.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ActiveOverlapping(ctx context.Context, seatIDs []int64, iv domain.Interval) ([]domain.Reservation, error)
	CreateAtomic(ctx context.Context, res *domain.Reservation) error
	Transition(ctx context.Context, reservationID int64, to domain.ReservationStatus) (*domain.Reservation, error)
	ListByMerchant(ctx context.Context, merchantID int64, status string, limit, offset int) ([]repository.MerchantReservationRow, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error)
}

// OccupancyNotifier is poked after any mutation that moves seat or
// reservation state, so dashboards can refresh. Best effort; booking outcomes
// never depend on it.
type OccupancyNotifier interface {
	OccupancyChanged(ctx context.Context, merchantID int64)
}
