package schedule

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories

type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) SeatsInZone(ctx context.Context, merchantID int64, zone string) ([]domain.Seat, error) {
	args := m.Called(ctx, merchantID, zone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ActiveOverlapping(ctx context.Context, seatIDs []int64, iv domain.Interval) ([]domain.Reservation, error) {
	args := m.Called(ctx, seatIDs, iv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) CreateAtomic(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	if res != nil && args.Error(0) == nil {
		res.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) Transition(ctx context.Context, reservationID int64, to domain.ReservationStatus) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByMerchant(ctx context.Context, merchantID int64, status string, limit, offset int) ([]repository.MerchantReservationRow, error) {
	args := m.Called(ctx, merchantID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MerchantReservationRow), args.Error(1)
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type MockOccupancyNotifier struct {
	mock.Mock
}

func (m *MockOccupancyNotifier) OccupancyChanged(ctx context.Context, merchantID int64) {
	m.Called(ctx, merchantID)
}

func newTestService(merchants *MockMerchantRepository, seats *MockSeatRepository, reservations *MockReservationRepository) *Service {
	svc := NewService(merchants, seats, reservations, nil)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validRequest() CreateReservationRequest {
	return CreateReservationRequest{
		MerchantID: 1,
		Zone:       "Patio",
		StartTime:  time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC),
		Guests:     2,
		UserID:     42,
		Type:       domain.ReservationOnline,
	}
}

func TestService_CreateReservation_Success(t *testing.T) {
	merchants := new(MockMerchantRepository)
	seats := new(MockSeatRepository)
	reservations := new(MockReservationRepository)

	merchants.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	seats.On("SeatsInZone", mock.Anything, int64(1), "Patio").Return(patioSeats(), nil)
	reservations.On("ActiveOverlapping", mock.Anything, []int64{1, 2}, mock.Anything).
		Return([]domain.Reservation{}, nil)
	reservations.On("CreateAtomic", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(merchants, seats, reservations)

	res, err := svc.CreateReservation(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, int64(999), res.ID)
	assert.Equal(t, int64(1), res.SeatID) // first-fit picks seq_no 1
	assert.Equal(t, domain.ReservationPending, res.Status)
	assert.Equal(t, domain.ReservationOnline, res.Type)
	reservations.AssertExpectations(t)
}

func TestService_CreateReservation_FirstFitSkipsTakenSeat(t *testing.T) {
	merchants := new(MockMerchantRepository)
	seats := new(MockSeatRepository)
	reservations := new(MockReservationRepository)

	req := validRequest()
	taken := []domain.Reservation{
		{SeatID: 1, StartTime: req.StartTime, EndTime: req.EndTime, Status: domain.ReservationPending},
	}

	merchants.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	seats.On("SeatsInZone", mock.Anything, int64(1), "Patio").Return(patioSeats(), nil)
	reservations.On("ActiveOverlapping", mock.Anything, []int64{1, 2}, mock.Anything).Return(taken, nil)
	reservations.On("CreateAtomic", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(merchants, seats, reservations)

	res, err := svc.CreateReservation(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(2), res.SeatID)
}

func TestService_CreateReservation_BadInterval(t *testing.T) {
	svc := newTestService(new(MockMerchantRepository), new(MockSeatRepository), new(MockReservationRepository))

	req := validRequest()
	req.EndTime = req.StartTime

	_, err := svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateReservation_PastStart(t *testing.T) {
	svc := newTestService(new(MockMerchantRepository), new(MockSeatRepository), new(MockReservationRepository))

	req := validRequest()
	req.StartTime = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC) // before injected noon clock
	req.EndTime = time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC)

	_, err := svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateReservation_WalkInNeedsCustomerName(t *testing.T) {
	svc := newTestService(new(MockMerchantRepository), new(MockSeatRepository), new(MockReservationRepository))

	req := validRequest()
	req.Type = domain.ReservationWalkIn
	req.UserID = 0
	req.CustomerName = ""

	_, err := svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateReservation_WalkInSuccess(t *testing.T) {
	merchants := new(MockMerchantRepository)
	seats := new(MockSeatRepository)
	reservations := new(MockReservationRepository)

	merchants.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	seats.On("SeatsInZone", mock.Anything, int64(1), "Patio").Return(patioSeats(), nil)
	reservations.On("ActiveOverlapping", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Reservation{}, nil)
	reservations.On("CreateAtomic", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(merchants, seats, reservations)

	req := validRequest()
	req.Type = domain.ReservationWalkIn
	req.UserID = 0
	req.CustomerName = "Dana"
	req.CustomerPhone = "+1555123"

	res, err := svc.CreateReservation(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationWalkIn, res.Type)
	assert.Equal(t, "Dana", res.CustomerName)
	assert.Zero(t, res.UserID)
}

func TestService_CreateReservation_WalkInDropsCallerUser(t *testing.T) {
	merchants := new(MockMerchantRepository)
	seats := new(MockSeatRepository)
	reservations := new(MockReservationRepository)

	merchants.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	seats.On("SeatsInZone", mock.Anything, int64(1), "Patio").Return(patioSeats(), nil)
	reservations.On("ActiveOverlapping", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Reservation{}, nil)
	reservations.On("CreateAtomic", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(merchants, seats, reservations)

	// The HTTP layer stamps the authenticated caller on every request;
	// for a walk-in that caller is staff, not the guest.
	req := validRequest()
	req.Type = domain.ReservationWalkIn
	req.UserID = 7
	req.CustomerName = "Dana"

	res, err := svc.CreateReservation(context.Background(), req)

	require.NoError(t, err)
	assert.Zero(t, res.UserID)
}

func TestService_CreateReservation_MerchantNotFound(t *testing.T) {
	merchants := new(MockMerchantRepository)
	merchants.On("Exists", mock.Anything, int64(1)).Return(false, nil)

	svc := newTestService(merchants, new(MockSeatRepository), new(MockReservationRepository))

	_, err := svc.CreateReservation(context.Background(), validRequest())
	assert.ErrorIs(t, err, repository.ErrMerchantNotFound)
}

func TestService_CreateReservation_EmptyZone(t *testing.T) {
	merchants := new(MockMerchantRepository)
	seats := new(MockSeatRepository)

	merchants.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	seats.On("SeatsInZone", mock.Anything, int64(1), "Patio").Return([]domain.Seat{}, nil)

	svc := newTestService(merchants, seats, new(MockReservationRepository))

	_, err := svc.CreateReservation(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestService_CreateReservation_AllSeatsConflict(t *testing.T) {
	merchants := new(MockMerchantRepository)
	seats := new(MockSeatRepository)
	reservations := new(MockReservationRepository)

	req := validRequest()
	taken := []domain.Reservation{
		{SeatID: 1, StartTime: req.StartTime, EndTime: req.EndTime, Status: domain.ReservationPending},
		{SeatID: 2, StartTime: req.StartTime, EndTime: req.EndTime, Status: domain.ReservationCheckedIn},
	}

	merchants.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	seats.On("SeatsInZone", mock.Anything, int64(1), "Patio").Return(patioSeats(), nil)
	reservations.On("ActiveOverlapping", mock.Anything, []int64{1, 2}, mock.Anything).Return(taken, nil)

	svc := newTestService(merchants, seats, reservations)

	_, err := svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestService_CreateReservation_RaceLostSurfacesSlotConflict(t *testing.T) {
	merchants := new(MockMerchantRepository)
	seats := new(MockSeatRepository)
	reservations := new(MockReservationRepository)

	merchants.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	seats.On("SeatsInZone", mock.Anything, int64(1), "Patio").Return(patioSeats(), nil)
	reservations.On("ActiveOverlapping", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Reservation{}, nil)
	reservations.On("CreateAtomic", mock.Anything, mock.Anything).Return(repository.ErrSlotConflict)

	svc := newTestService(merchants, seats, reservations)

	_, err := svc.CreateReservation(context.Background(), validRequest())
	assert.ErrorIs(t, err, repository.ErrSlotConflict)

	// No second CreateAtomic call: the engine does not retry across seats.
	reservations.AssertNumberOfCalls(t, "CreateAtomic", 1)
}

func TestService_Transitions_DelegateAndNotify(t *testing.T) {
	reservations := new(MockReservationRepository)
	notifier := new(MockOccupancyNotifier)

	updated := &domain.Reservation{ID: 7, MerchantID: 3, Status: domain.ReservationCheckedIn}
	reservations.On("Transition", mock.Anything, int64(7), domain.ReservationCheckedIn).Return(updated, nil)
	notifier.On("OccupancyChanged", mock.Anything, int64(3)).Return()

	svc := NewService(new(MockMerchantRepository), new(MockSeatRepository), reservations, notifier)

	res, err := svc.CheckIn(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCheckedIn, res.Status)
	notifier.AssertCalled(t, "OccupancyChanged", mock.Anything, int64(3))
}

func TestService_Transition_ErrorsPassThrough(t *testing.T) {
	reservations := new(MockReservationRepository)
	reservations.On("Transition", mock.Anything, int64(7), domain.ReservationCompleted).
		Return(nil, domain.ErrInvalidTransition)

	svc := NewService(new(MockMerchantRepository), new(MockSeatRepository), reservations, nil)

	_, err := svc.Complete(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestService_Availability_ListsFreeSeats(t *testing.T) {
	merchants := new(MockMerchantRepository)
	seats := new(MockSeatRepository)
	reservations := new(MockReservationRepository)

	req := validRequest()
	taken := []domain.Reservation{
		{SeatID: 1, StartTime: req.StartTime, EndTime: req.EndTime, Status: domain.ReservationPending},
	}

	merchants.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	seats.On("SeatsInZone", mock.Anything, int64(1), "Patio").Return(patioSeats(), nil)
	reservations.On("ActiveOverlapping", mock.Anything, []int64{1, 2}, mock.Anything).Return(taken, nil)

	svc := newTestService(merchants, seats, reservations)

	out, err := svc.Availability(context.Background(), 1, "Patio", req.StartTime, req.EndTime)

	require.NoError(t, err)
	require.Len(t, out.FreeSeats, 1)
	assert.Equal(t, int64(2), out.FreeSeats[0].ID)
}
