package repository

import (
	"context"
	"errors"

	"tablebook/internal/domain"

	"gorm.io/gorm"
)

type MerchantRepository struct {
	db *gorm.DB
}

func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

func (r *MerchantRepository) Create(ctx context.Context, m *domain.Merchant) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MerchantRepository) GetByID(ctx context.Context, id int64) (*domain.Merchant, error) {
	var m domain.Merchant
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, tx.Error
	}
	return &m, nil
}

func (r *MerchantRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Merchant{}).
		Where("id = ?", id).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *MerchantRepository) List(ctx context.Context, limit, offset int) ([]domain.Merchant, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var out []domain.Merchant
	tx := r.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return out, nil
}

// Delete removes the merchant together with its seats. Reservations stay on
// record for history; orphaned seat references are acceptable once the
// merchant itself is gone.
func (r *MerchantRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("merchant_id = ?", id).Delete(&domain.Seat{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Merchant{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMerchantNotFound
		}
		return nil
	})
}
