package schedule

import (
	"context"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

// Service drives the booking transaction and the reservation lifecycle. All
// cross-request coordination happens in the repository's atomic units; the
// service holds no locks and may run in any number of instances.
type Service struct {
	merchants    MerchantRepository
	seats        SeatRepository
	reservations ReservationRepository
	occupancy    OccupancyNotifier

	// now is swapped out in tests to keep validation deterministic.
	now func() time.Time
}

func NewService(
	merchants MerchantRepository,
	seats SeatRepository,
	reservations ReservationRepository,
	occupancy OccupancyNotifier,
) *Service {
	return &Service{
		merchants:    merchants,
		seats:        seats,
		reservations: reservations,
		occupancy:    occupancy,
		now:          time.Now,
	}
}

// CreateReservation allocates a seat first-fit and books it. A lost race at
// commit time surfaces as repository.ErrSlotConflict; the engine never
// retries across seats on its own, resubmitting is the caller's call.
func (s *Service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	iv, err := domain.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, ErrValidation
	}
	if iv.Start.Before(s.now()) {
		return nil, ErrValidation
	}
	if req.Guests < 1 {
		return nil, ErrValidation
	}

	resType := req.Type
	if resType == "" {
		resType = domain.ReservationOnline
	}
	switch resType {
	case domain.ReservationOnline:
		if req.UserID == 0 {
			return nil, ErrValidation
		}
	case domain.ReservationWalkIn:
		if req.CustomerName == "" {
			return nil, ErrValidation
		}
		// Walk-ins belong to no account; the staff member who keyed the
		// booking in is not the guest.
		req.UserID = 0
	default:
		return nil, ErrValidation
	}

	ok, err := s.merchants.Exists(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrMerchantNotFound
	}

	seat, found, err := s.resolve(ctx, req.MerchantID, req.Zone, iv)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoAvailability
	}

	res := &domain.Reservation{
		SeatID:        seat.ID,
		MerchantID:    req.MerchantID,
		UserID:        req.UserID,
		StartTime:     iv.Start,
		EndTime:       iv.End,
		Guests:        req.Guests,
		Tables:        req.Tables,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Note:          req.Note,
		Type:          resType,
		Status:        domain.ReservationPending,
	}

	if err := s.reservations.CreateAtomic(ctx, res); err != nil {
		return nil, err
	}

	s.notifyOccupancy(ctx, req.MerchantID)
	return res, nil
}

// Availability runs the resolver read-only: all free seats of a zone for the
// window. Never use this to gate a booking, the atomic re-check does that.
func (s *Service) Availability(ctx context.Context, merchantID int64, zone string, start, end time.Time) (*AvailabilityResponse, error) {
	iv, err := domain.NewInterval(start, end)
	if err != nil {
		return nil, ErrValidation
	}

	ok, err := s.merchants.Exists(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrMerchantNotFound
	}

	seats, err := s.seats.SeatsInZone(ctx, merchantID, zone)
	if err != nil {
		return nil, err
	}
	active, err := s.activeFor(ctx, seats, iv)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		MerchantID: merchantID,
		Zone:       zone,
		Start:      iv.Start,
		End:        iv.End,
		FreeSeats:  FreeSeats(seats, active, iv),
	}, nil
}

func (s *Service) resolve(ctx context.Context, merchantID int64, zone string, iv domain.Interval) (domain.Seat, bool, error) {
	seats, err := s.seats.SeatsInZone(ctx, merchantID, zone)
	if err != nil {
		return domain.Seat{}, false, err
	}
	if len(seats) == 0 {
		return domain.Seat{}, false, nil
	}
	active, err := s.activeFor(ctx, seats, iv)
	if err != nil {
		return domain.Seat{}, false, err
	}
	seat, ok := FirstFit(seats, active, iv)
	return seat, ok, nil
}

func (s *Service) activeFor(ctx context.Context, seats []domain.Seat, iv domain.Interval) ([]domain.Reservation, error) {
	if len(seats) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.ID)
	}
	return s.reservations.ActiveOverlapping(ctx, ids, iv)
}

// CheckIn marks a PENDING reservation CHECKED_IN. The seat stays held.
func (s *Service) CheckIn(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	return s.transition(ctx, reservationID, domain.ReservationCheckedIn)
}

// Complete finishes a CHECKED_IN reservation and releases the seat.
func (s *Service) Complete(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	return s.transition(ctx, reservationID, domain.ReservationCompleted)
}

// Cancel voids a PENDING reservation and releases the seat.
func (s *Service) Cancel(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	return s.transition(ctx, reservationID, domain.ReservationCancelled)
}

// MarkNoShow records a PENDING reservation as NO_SHOW and releases the seat.
func (s *Service) MarkNoShow(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	return s.transition(ctx, reservationID, domain.ReservationNoShow)
}

func (s *Service) transition(ctx context.Context, reservationID int64, to domain.ReservationStatus) (*domain.Reservation, error) {
	res, err := s.reservations.Transition(ctx, reservationID, to)
	if err != nil {
		return nil, err
	}
	s.notifyOccupancy(ctx, res.MerchantID)
	return res, nil
}

func (s *Service) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *Service) MerchantReservations(ctx context.Context, merchantID int64, status string, limit, offset int) ([]repository.MerchantReservationRow, error) {
	return s.reservations.ListByMerchant(ctx, merchantID, status, limit, offset)
}

func (s *Service) UserReservations(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) notifyOccupancy(ctx context.Context, merchantID int64) {
	if s.occupancy != nil {
		s.occupancy.OccupancyChanged(ctx, merchantID)
	}
}
