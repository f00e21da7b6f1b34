package schedule

import (
	"time"

	"tablebook/internal/domain"
)

type CreateReservationRequest struct {
	MerchantID    int64                  `json:"merchant_id" binding:"required"`
	Zone          string                 `json:"zone" binding:"required"`
	StartTime     time.Time              `json:"start_time" binding:"required"`
	EndTime       time.Time              `json:"end_time" binding:"required"`
	Guests        int                    `json:"guests" binding:"required,gt=0"`
	Tables        int                    `json:"tables"`
	UserID        int64                  `json:"-"`
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone"`
	Note          string                 `json:"note"`
	Type          domain.ReservationType `json:"type"`
}

type AvailabilityResponse struct {
	MerchantID int64         `json:"merchant_id"`
	Zone       string        `json:"zone"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	FreeSeats  []domain.Seat `json:"free_seats"`
}
