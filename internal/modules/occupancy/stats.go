package occupancy

import (
	"time"

	"tablebook/internal/domain"
)

// ZoneStats is the per-zone dashboard line. OccupiedSeats is instantaneous
// (an active reservation's window contains "now") while AvailableSeats reads
// the persisted seat flag, which already reflects committed future holds. The
// two deliberately disagree for a reservation whose window has not started:
// the seat shows unavailable without being occupied yet.
type ZoneStats struct {
	Zone                string `json:"zone"`
	TotalSeats          int    `json:"total_seats"`
	AvailableSeats      int    `json:"available_seats"`
	OccupiedSeats       int    `json:"occupied_seats"`
	CurrentReservations int    `json:"current_reservations"`
}

// Full reports whether every seat of the zone is occupied right now.
func (z ZoneStats) Full() bool {
	return z.TotalSeats > 0 && z.OccupiedSeats >= z.TotalSeats
}

// OccupancyRate returns the instantaneous occupancy as a 0-100 percentage.
func (z ZoneStats) OccupancyRate() float64 {
	if z.TotalSeats == 0 {
		return 0
	}
	return float64(z.OccupiedSeats) / float64(z.TotalSeats) * 100
}

// MerchantOccupancy is one merchant's full dashboard snapshot.
type MerchantOccupancy struct {
	MerchantID int64       `json:"merchant_id"`
	AsOf       time.Time   `json:"as_of"`
	Zones      []ZoneStats `json:"zones"`
}

// Compute derives zone statistics from seats and active reservations at the
// given instant. Pure read-side: no mutation, time injected, and never to be
// used to gate a booking decision. Zones come out in first-seen seat order
// (seats arrive ordered by sequence number).
func Compute(seats []domain.Seat, active []domain.Reservation, now time.Time) []ZoneStats {
	zoneOf := make(map[int64]string, len(seats))
	occupiedSeat := make(map[int64]bool)

	for _, s := range seats {
		zoneOf[s.ID] = s.Zone
	}
	for _, res := range active {
		if !res.Status.Active() {
			continue
		}
		if res.Interval().Contains(now) {
			occupiedSeat[res.SeatID] = true
		}
	}

	order := make([]string, 0)
	byZone := make(map[string]*ZoneStats)
	for _, s := range seats {
		st, ok := byZone[s.Zone]
		if !ok {
			st = &ZoneStats{Zone: s.Zone}
			byZone[s.Zone] = st
			order = append(order, s.Zone)
		}
		st.TotalSeats++
		if occupiedSeat[s.ID] {
			st.OccupiedSeats++
		} else if s.IsAvailable {
			st.AvailableSeats++
		}
	}

	for _, res := range active {
		if !res.Status.Active() {
			continue
		}
		zone, ok := zoneOf[res.SeatID]
		if !ok {
			continue
		}
		if st := byZone[zone]; st != nil {
			st.CurrentReservations++
		}
	}

	out := make([]ZoneStats, 0, len(order))
	for _, zone := range order {
		out = append(out, *byZone[zone])
	}
	return out
}
