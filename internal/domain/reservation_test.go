package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_LegalMoves(t *testing.T) {
	assert.NoError(t, CanTransition(ReservationPending, ReservationCheckedIn))
	assert.NoError(t, CanTransition(ReservationPending, ReservationCancelled))
	assert.NoError(t, CanTransition(ReservationPending, ReservationNoShow))
	assert.NoError(t, CanTransition(ReservationCheckedIn, ReservationCompleted))
}

func TestCanTransition_SkippingCheckInFails(t *testing.T) {
	err := CanTransition(ReservationPending, ReservationCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanTransition_CheckedInCannotCancelOrNoShow(t *testing.T) {
	assert.ErrorIs(t, CanTransition(ReservationCheckedIn, ReservationCancelled), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(ReservationCheckedIn, ReservationNoShow), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(ReservationCheckedIn, ReservationPending), ErrInvalidTransition)
}

func TestCanTransition_TerminalRejectsEverything(t *testing.T) {
	terminals := []ReservationStatus{ReservationCompleted, ReservationCancelled, ReservationNoShow}
	targets := []ReservationStatus{
		ReservationPending, ReservationCheckedIn, ReservationCompleted,
		ReservationCancelled, ReservationNoShow,
	}
	for _, from := range terminals {
		for _, to := range targets {
			assert.ErrorIs(t, CanTransition(from, to), ErrAlreadyFinalized,
				"transition %s -> %s", from, to)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, ReservationPending.Active())
	assert.True(t, ReservationCheckedIn.Active())
	assert.False(t, ReservationCompleted.Active())
	assert.False(t, ReservationCancelled.Active())
	assert.False(t, ReservationNoShow.Active())

	assert.False(t, ReservationPending.ReleasesSeat())
	assert.False(t, ReservationCheckedIn.ReleasesSeat())
	assert.True(t, ReservationCompleted.ReleasesSeat())
	assert.True(t, ReservationCancelled.ReleasesSeat())
	assert.True(t, ReservationNoShow.ReleasesSeat())
}

func TestBuildSeats_SequencesAcrossZones(t *testing.T) {
	seats := BuildSeats(7, []ZoneDefinition{
		{Zone: "Patio", Count: 2},
		{Zone: "Indoor", Count: 3},
	})

	assert.Len(t, seats, 5)
	for i, s := range seats {
		assert.Equal(t, int64(7), s.MerchantID)
		assert.Equal(t, i+1, s.SeqNo)
		assert.True(t, s.IsAvailable)
	}
	assert.Equal(t, "Patio", seats[0].Zone)
	assert.Equal(t, "Patio", seats[1].Zone)
	assert.Equal(t, "Indoor", seats[2].Zone)
	assert.Equal(t, "Indoor", seats[4].Zone)
}
