package repository

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// NoOverlapConstraint is the Postgres exclusion constraint rejecting two
// active reservations with intersecting windows on one seat. It backstops the
// in-transaction re-check; see database.Migrate.
const NoOverlapConstraint = "reservations_no_overlap"

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	tx := r.db.WithContext(ctx).First(&res, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, tx.Error
	}
	return &res, nil
}

// ActiveOverlapping returns active (PENDING/CHECKED_IN) reservations on the
// given seats whose window intersects iv, ordered by start time. Touching
// endpoints do not intersect: start_time < iv.End AND end_time > iv.Start.
func (r *ReservationRepository) ActiveOverlapping(ctx context.Context, seatIDs []int64, iv domain.Interval) ([]domain.Reservation, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}

	var out []domain.Reservation
	tx := r.db.WithContext(ctx).
		Where("seat_id IN ?", seatIDs).
		Where("status IN ?", activeStatuses()).
		Where("start_time < ? AND end_time > ?", iv.End, iv.Start).
		Order("start_time").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// ActiveByMerchant returns every active reservation of a merchant, regardless
// of time. Read-side only; the occupancy aggregator consumes it.
func (r *ReservationRepository) ActiveByMerchant(ctx context.Context, merchantID int64) ([]domain.Reservation, error) {
	var out []domain.Reservation
	tx := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Where("status IN ?", activeStatuses()).
		Order("start_time").
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// CreateAtomic claims the chosen seat and inserts the reservation as one
// transaction: re-count active overlapping reservations on the seat, insert
// with whatever status the caller set (PENDING for new bookings), flip the
// seat's cached availability flag. If the re-check finds an overlap the whole
// unit fails with ErrSlotConflict and nothing is written. On Postgres the
// exclusion constraint catches the residual race between two concurrent
// re-checks; its violation maps to ErrSlotConflict as well.
func (r *ReservationRepository) CreateAtomic(ctx context.Context, res *domain.Reservation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seat domain.Seat
		if err := tx.First(&seat, res.SeatID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSeatNotFound
			}
			return err
		}

		var cnt int64
		if err := tx.Model(&domain.Reservation{}).
			Where("seat_id = ?", res.SeatID).
			Where("status IN ?", activeStatuses()).
			Where("start_time < ? AND end_time > ?", res.EndTime, res.StartTime).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrSlotConflict
		}

		if err := tx.Create(res).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Seat{}).
			Where("id = ?", res.SeatID).
			Updates(map[string]any{
				"is_available": false,
				"updated_at":   time.Now().UTC(),
			}).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23P01 exclusion_violation, 23505 unique_violation
			if (pgErr.Code == "23P01" || pgErr.Code == "23505") && pgErr.ConstraintName == NoOverlapConstraint {
				return ErrSlotConflict
			}
		}
		return err
	}
	return nil
}

// Transition applies a lifecycle status change in one transaction. Legality is
// decided by domain.CanTransition; when the target status releases the seat,
// the seat's availability flag is restored unless another active reservation
// still holds the seat.
func (r *ReservationRepository) Transition(ctx context.Context, reservationID int64, to domain.ReservationStatus) (*domain.Reservation, error) {
	var out domain.Reservation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res domain.Reservation
		if err := tx.First(&res, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if err := domain.CanTransition(res.Status, to); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&domain.Reservation{}).
			Where("id = ?", res.ID).
			Updates(map[string]any{
				"status":     string(to),
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		if to.ReleasesSeat() {
			var remaining int64
			if err := tx.Model(&domain.Reservation{}).
				Where("seat_id = ? AND id <> ?", res.SeatID, res.ID).
				Where("status IN ?", activeStatuses()).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				if err := tx.Model(&domain.Seat{}).
					Where("id = ?", res.SeatID).
					Updates(map[string]any{
						"is_available": true,
						"updated_at":   now,
					}).Error; err != nil {
					return err
				}
			}
		}

		res.Status = to
		res.UpdatedAt = now
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MerchantReservationRow is the merchant dashboard listing shape: reservation
// fields joined with the seat's zone and sequence number.
type MerchantReservationRow struct {
	ID            int64     `json:"id"`
	SeatID        int64     `json:"seat_id"`
	Zone          string    `json:"zone"`
	SeatSeqNo     int       `json:"seat_seq_no"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Guests        int       `json:"guests"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *ReservationRepository) ListByMerchant(ctx context.Context, merchantID int64, status string, limit, offset int) ([]MerchantReservationRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := r.db.WithContext(ctx).
		Table("reservations r").
		Select(`
			r.id,
			r.seat_id,
			s.zone,
			s.seq_no AS seat_seq_no,
			r.start_time,
			r.end_time,
			r.guests,
			r.customer_name,
			r.customer_phone,
			r.type,
			r.status,
			r.created_at
		`).
		Joins("JOIN seats s ON s.id = r.seat_id").
		Where("r.merchant_id = ?", merchantID)

	if status != "" && status != "all" {
		q = q.Where("r.status = ?", status)
	}

	var rows []MerchantReservationRow
	tx := q.Order("r.start_time DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var out []domain.Reservation
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}
