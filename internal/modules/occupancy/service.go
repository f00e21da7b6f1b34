package occupancy

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/repository"

	"github.com/redis/go-redis/v9"
)

type MerchantRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type SeatRepository interface {
	ListByMerchant(ctx context.Context, merchantID int64) ([]domain.Seat, error)
}

type ReservationRepository interface {
	ActiveByMerchant(ctx context.Context, merchantID int64) ([]domain.Reservation, error)
}

const snapshotTTL = 5 * time.Second

// Service serves dashboard snapshots. Reads may be slightly stale: snapshots
// are cached in redis for a few seconds and pushed to websocket subscribers
// on every booking or lifecycle change. Both the cache and the hub are
// optional; with neither configured every read recomputes from storage.
type Service struct {
	merchants    MerchantRepository
	seats        SeatRepository
	reservations ReservationRepository
	cache        *redis.Client
	hub          *Hub

	now func() time.Time
}

func NewService(
	merchants MerchantRepository,
	seats SeatRepository,
	reservations ReservationRepository,
	cache *redis.Client,
	hub *Hub,
) *Service {
	return &Service{
		merchants:    merchants,
		seats:        seats,
		reservations: reservations,
		cache:        cache,
		hub:          hub,
		now:          time.Now,
	}
}

func snapshotKey(merchantID int64) string {
	return fmt.Sprintf("occupancy:merchant:%d", merchantID)
}

// Snapshot returns the merchant's zone statistics, from cache when fresh.
func (s *Service) Snapshot(ctx context.Context, merchantID int64) (*MerchantOccupancy, error) {
	ok, err := s.merchants.Exists(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrMerchantNotFound
	}

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, snapshotKey(merchantID)).Bytes()
		if err == nil {
			var cached MerchantOccupancy
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	snap, err := s.compute(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, snap)
	return snap, nil
}

// OccupancyChanged implements the notifier consumed by the schedule and
// seating modules. It recomputes the snapshot and pushes it to subscribers;
// a failure here never fails the booking that triggered it.
func (s *Service) OccupancyChanged(ctx context.Context, merchantID int64) {
	snap, err := s.compute(ctx, merchantID)
	if err != nil {
		log.Printf("occupancy_refresh_failed merchant_id=%d error=%q", merchantID, err)
		return
	}
	s.store(ctx, snap)
	if s.hub != nil {
		s.hub.Broadcast(merchantID, snap)
	}
}

func (s *Service) compute(ctx context.Context, merchantID int64) (*MerchantOccupancy, error) {
	seats, err := s.seats.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	active, err := s.reservations.ActiveByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return &MerchantOccupancy{
		MerchantID: merchantID,
		AsOf:       now,
		Zones:      Compute(seats, active, now),
	}, nil
}

func (s *Service) store(ctx context.Context, snap *MerchantOccupancy) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, snapshotKey(snap.MerchantID), raw, snapshotTTL).Err(); err != nil {
		log.Printf("occupancy_cache_set_failed merchant_id=%d error=%q", snap.MerchantID, err)
	}
}
