package directory

import (
	"context"

	"tablebook/internal/domain"
)

type MerchantRepository interface {
	Create(ctx context.Context, m *domain.Merchant) error
	GetByID(ctx context.Context, id int64) (*domain.Merchant, error)
	List(ctx context.Context, limit, offset int) ([]domain.Merchant, error)
	Delete(ctx context.Context, id int64) error
}
