package domain

import "time"

// Seat is a bookable unit belonging to one merchant. Zone is a plain string
// label; seats sharing a label form the zone. SeqNo is assigned contiguously
// starting at 1 across all zones in definition order and gives the stable
// iteration order used by first-fit allocation.
//
// IsAvailable is a cached signal, not the booking gate: it goes false when an
// active reservation claims the seat and back to true when the last active
// reservation on the seat reaches a terminal status. Conflict checks always
// use reservation overlap, never this flag.
type Seat struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	MerchantID  int64     `json:"merchant_id" gorm:"index:idx_seats_merchant_zone"`
	Zone        string    `json:"zone" gorm:"index:idx_seats_merchant_zone"`
	SeqNo       int       `json:"seq_no"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ZoneDefinition is one (zone, count) pair of a bulk seat replacement.
type ZoneDefinition struct {
	Zone  string `json:"zone" binding:"required"`
	Count int    `json:"count" binding:"required,gt=0"`
}

// BuildSeats expands zone definitions into fresh seats for a merchant,
// numbering seats 1..n across all definitions in order.
func BuildSeats(merchantID int64, defs []ZoneDefinition) []Seat {
	seats := make([]Seat, 0)
	seq := 0
	for _, def := range defs {
		for i := 0; i < def.Count; i++ {
			seq++
			seats = append(seats, Seat{
				MerchantID:  merchantID,
				Zone:        def.Zone,
				SeqNo:       seq,
				IsAvailable: true,
			})
		}
	}
	return seats
}
