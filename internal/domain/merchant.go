package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMerchant Role = "merchant"
	RoleCustomer Role = "customer"
)

// Merchant is a walk-in venue (bar, restaurant). Zones are not stored on the
// merchant: they are the distinct Zone labels of its seats.
type Merchant struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	OwnerID   int64     `json:"owner_id" gorm:"index"`
	Name      string    `json:"name" validate:"required"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
