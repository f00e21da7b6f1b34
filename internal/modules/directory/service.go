package directory

import (
	"context"

	"tablebook/internal/domain"
	"tablebook/internal/pkg/validator"
)

type Service struct {
	merchants MerchantRepository
}

func NewService(merchants MerchantRepository) *Service {
	return &Service{merchants: merchants}
}

func (s *Service) Register(ctx context.Context, req RegisterMerchantRequest) (*domain.Merchant, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, ErrValidation
	}
	if req.OwnerID <= 0 {
		return nil, ErrValidation
	}

	m := &domain.Merchant{
		OwnerID: req.OwnerID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.merchants.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Merchant, error) {
	return s.merchants.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Merchant, error) {
	return s.merchants.List(ctx, limit, offset)
}

// Remove deletes the merchant and its seat pool. Ownership is enforced at
// the route level.
func (s *Service) Remove(ctx context.Context, id int64) error {
	return s.merchants.Delete(ctx, id)
}
