package directory

type RegisterMerchantRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Address string `json:"address" validate:"omitempty,max=255"`

	// OwnerID comes from the auth context, never the body.
	OwnerID int64 `json:"-"`
}
