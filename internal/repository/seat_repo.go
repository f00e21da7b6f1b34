package repository

import (
	"context"
	"errors"

	"tablebook/internal/domain"

	"gorm.io/gorm"
)

type SeatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	var s domain.Seat
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, tx.Error
	}
	return &s, nil
}

// SeatsInZone lists a zone's seats ordered by sequence number. The order is
// the allocation order: first-fit walks it front to back.
func (r *SeatRepository) SeatsInZone(ctx context.Context, merchantID int64, zone string) ([]domain.Seat, error) {
	var out []domain.Seat
	tx := r.db.WithContext(ctx).
		Where("merchant_id = ? AND zone = ?", merchantID, zone).
		Order("seq_no").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

func (r *SeatRepository) ListByMerchant(ctx context.Context, merchantID int64) ([]domain.Seat, error) {
	var out []domain.Seat
	tx := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("seq_no").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// Zones returns the distinct zone labels of a merchant in seat order. Zones
// are derived from seats, never stored separately.
func (r *SeatRepository) Zones(ctx context.Context, merchantID int64) ([]string, error) {
	var zones []string
	tx := r.db.WithContext(ctx).
		Model(&domain.Seat{}).
		Where("merchant_id = ?", merchantID).
		Order("seq_no").
		Distinct().
		Pluck("zone", &zones)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return zones, nil
}

// ReplaceForMerchant deletes every seat of the merchant and recreates the pool
// from the zone definitions, numbering seats contiguously from 1 in definition
// order. The whole swap runs in one transaction and is refused with
// ErrSeatsInUse while any active reservation still references the old seats,
// so no in-flight reservation is ever orphaned.
func (r *SeatRepository) ReplaceForMerchant(ctx context.Context, merchantID int64, defs []domain.ZoneDefinition) ([]domain.Seat, error) {
	seats := domain.BuildSeats(merchantID, defs)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&domain.Reservation{}).
			Where("merchant_id = ?", merchantID).
			Where("status IN ?", activeStatuses()).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrSeatsInUse
		}

		if err := tx.Where("merchant_id = ?", merchantID).Delete(&domain.Seat{}).Error; err != nil {
			return err
		}
		if len(seats) == 0 {
			return nil
		}
		return tx.Create(&seats).Error
	})
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func activeStatuses() []string {
	return []string{
		string(domain.ReservationPending),
		string(domain.ReservationCheckedIn),
	}
}
