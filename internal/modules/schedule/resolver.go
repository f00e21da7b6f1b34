package schedule

import (
	"sort"

	"tablebook/internal/domain"
)

// FreeSeats returns the seats with no active reservation overlapping iv, in
// sequence-number order. It is a pure function of its inputs so alternative
// selection strategies can replace FirstFit without touching the transaction
// logic. Only PENDING and CHECKED_IN reservations count as conflicts.
func FreeSeats(seats []domain.Seat, active []domain.Reservation, iv domain.Interval) []domain.Seat {
	busy := make(map[int64]bool)
	for _, res := range active {
		if !res.Status.Active() {
			continue
		}
		if res.Interval().Overlaps(iv) {
			busy[res.SeatID] = true
		}
	}

	free := make([]domain.Seat, 0, len(seats))
	for _, s := range seats {
		if !busy[s.ID] {
			free = append(free, s)
		}
	}
	sort.Slice(free, func(i, j int) bool { return free[i].SeqNo < free[j].SeqNo })
	return free
}

// FirstFit picks the free seat with the lowest sequence number. The second
// return is false when the zone is empty or every seat conflicts.
func FirstFit(seats []domain.Seat, active []domain.Reservation, iv domain.Interval) (domain.Seat, bool) {
	free := FreeSeats(seats, active, iv)
	if len(free) == 0 {
		return domain.Seat{}, false
	}
	return free[0], true
}
