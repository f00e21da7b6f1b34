package seating

import (
	"context"
	"strings"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

// Service manages a merchant's seat pool. Zone definitions fully replace the
// pool: all prior seats are deleted and regenerated with fresh identifiers.
type Service struct {
	merchants MerchantRepository
	seats     SeatRepository
	occupancy OccupancyNotifier
}

func NewService(merchants MerchantRepository, seats SeatRepository, occupancy OccupancyNotifier) *Service {
	return &Service{merchants: merchants, seats: seats, occupancy: occupancy}
}

// DefineZones swaps the merchant's seats for the given definitions. Fails
// with repository.ErrSeatsInUse while active reservations still reference the
// current pool, so bookings are never silently orphaned.
func (s *Service) DefineZones(ctx context.Context, merchantID int64, defs []domain.ZoneDefinition) ([]domain.Seat, error) {
	if len(defs) == 0 {
		return nil, ErrValidation
	}
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		name := strings.TrimSpace(def.Zone)
		if name == "" || def.Count < 1 {
			return nil, ErrValidation
		}
		if seen[name] {
			return nil, ErrValidation
		}
		seen[name] = true
	}

	ok, err := s.merchants.Exists(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrMerchantNotFound
	}

	seats, err := s.seats.ReplaceForMerchant(ctx, merchantID, defs)
	if err != nil {
		return nil, err
	}

	if s.occupancy != nil {
		s.occupancy.OccupancyChanged(ctx, merchantID)
	}
	return seats, nil
}

func (s *Service) ListSeats(ctx context.Context, merchantID int64, zone string) ([]domain.Seat, error) {
	ok, err := s.merchants.Exists(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrMerchantNotFound
	}

	if zone != "" {
		return s.seats.SeatsInZone(ctx, merchantID, zone)
	}
	return s.seats.ListByMerchant(ctx, merchantID)
}

func (s *Service) ListZones(ctx context.Context, merchantID int64) ([]string, error) {
	ok, err := s.merchants.Exists(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrMerchantNotFound
	}
	return s.seats.Zones(ctx, merchantID)
}
