package seating

import (
	"context"

	"tablebook/internal/domain"
)

type MerchantRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// SeatRepository is the seat pool's storage. ReplaceForMerchant must run as
// one transaction and refuse the swap while active reservations reference the
// merchant's current seats.
type SeatRepository interface {
	ListByMerchant(ctx context.Context, merchantID int64) ([]domain.Seat, error)
	SeatsInZone(ctx context.Context, merchantID int64, zone string) ([]domain.Seat, error)
	Zones(ctx context.Context, merchantID int64) ([]string, error)
	ReplaceForMerchant(ctx context.Context, merchantID int64, defs []domain.ZoneDefinition) ([]domain.Seat, error)
}

type OccupancyNotifier interface {
	OccupancyChanged(ctx context.Context, merchantID int64)
}
