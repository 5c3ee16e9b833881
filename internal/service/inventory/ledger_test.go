package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSeatStore struct {
	mock.Mock
}

func (m *MockSeatStore) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seat), args.Error(1)
}

func (m *MockSeatStore) ListAssignable(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatStore) Reserve(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSeatStore) Release(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockServiceStore struct {
	mock.Mock
}

func (m *MockServiceStore) ReserveUnits(ctx context.Context, id int64, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockServiceStore) ReleaseUnits(ctx context.Context, id int64, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

type MockServiceCache struct {
	mock.Mock
}

func (m *MockServiceCache) InvalidateServices(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func noShuffle([]domain.Seat) {}

func newTestLedger(seats *MockSeatStore, services *MockServiceStore, opts ...LedgerOption) *Ledger {
	logger, _ := test.NewNullLogger()
	opts = append([]LedgerOption{WithShuffle(noShuffle), WithLogger(logger)}, opts...)
	return NewLedger(seats, services, opts...)
}

func economySeat(id int64, number string) domain.Seat {
	return domain.Seat{ID: id, FlightID: 1, SeatNumber: number, SeatType: domain.SeatTypeEconomy, SeatClass: domain.SeatClassAisle, IsAvailable: true, Price: decimal.Zero}
}

func TestLedger_ReserveSeat(t *testing.T) {
	ctx := context.Background()
	seats := &MockSeatStore{}
	ledger := newTestLedger(seats, &MockServiceStore{})

	seat := domain.Seat{ID: 12, SeatNumber: "12A", IsAvailable: true, IsExtraLegroom: true, Price: decimal.RequireFromString("45.00")}
	seats.On("GetByID", ctx, int64(12)).Return(&seat, nil)
	seats.On("Reserve", ctx, int64(12)).Return(nil)

	got, err := ledger.ReserveSeat(ctx, 12)

	require.NoError(t, err)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, "45.00", got.Price.StringFixed(2))
	seats.AssertExpectations(t)
}

func TestLedger_ReserveSeat_AlreadyTaken(t *testing.T) {
	ctx := context.Background()
	seats := &MockSeatStore{}
	ledger := newTestLedger(seats, &MockServiceStore{})

	seats.On("GetByID", ctx, int64(7)).Return(&domain.Seat{ID: 7, IsAvailable: false}, nil)

	_, err := ledger.ReserveSeat(ctx, 7)

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	seats.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
}

func TestLedger_ReserveSeat_LostRace(t *testing.T) {
	ctx := context.Background()
	seats := &MockSeatStore{}
	ledger := newTestLedger(seats, &MockServiceStore{})

	seat := economySeat(7, "14C")
	seats.On("GetByID", ctx, int64(7)).Return(&seat, nil)
	seats.On("Reserve", ctx, int64(7)).Return(domain.ErrSeatUnavailable)

	_, err := ledger.ReserveSeat(ctx, 7)

	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)
	assert.Equal(t, "Selected seat is not available", domain.Message(err))
}

func TestLedger_ReserveSeats_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	seats := &MockSeatStore{}
	ledger := newTestLedger(seats, &MockServiceStore{})

	first := economySeat(1, "10A")
	seats.On("GetByID", ctx, int64(1)).Return(&first, nil)
	seats.On("Reserve", ctx, int64(1)).Return(nil)
	seats.On("GetByID", ctx, int64(2)).Return(&domain.Seat{ID: 2, IsAvailable: false}, nil)
	seats.On("Release", ctx, int64(1)).Return(nil)

	reserved, err := ledger.ReserveSeats(ctx, []int64{1, 2})

	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)
	assert.Nil(t, reserved)
	seats.AssertCalled(t, "Release", ctx, int64(1))
}

func TestLedger_ReleaseSeats_ReportsAllFailures(t *testing.T) {
	ctx := context.Background()
	seats := &MockSeatStore{}
	ledger := newTestLedger(seats, &MockServiceStore{})

	seats.On("Release", ctx, int64(1)).Return(errors.New("db down"))
	seats.On("Release", ctx, int64(2)).Return(nil)

	err := ledger.ReleaseSeats(ctx, []int64{1, 2})

	assert.EqualError(t, err, "db down")
	seats.AssertNumberOfCalls(t, "Release", 2)
}

func TestLedger_ReserveServiceUnits(t *testing.T) {
	ctx := context.Background()
	services := &MockServiceStore{}
	cache := &MockServiceCache{}
	ledger := newTestLedger(&MockSeatStore{}, services, WithServiceCache(cache))

	lines := []domain.ServiceLine{{ServiceID: 1, Quantity: 2}, {ServiceID: 2}}
	services.On("ReserveUnits", ctx, int64(1), 2).Return(nil)
	services.On("ReserveUnits", ctx, int64(2), 1).Return(nil)
	cache.On("InvalidateServices", ctx).Return(nil)

	require.NoError(t, ledger.ReserveServiceUnits(ctx, lines))
	services.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestLedger_ReserveServiceUnits_InsufficientInventory(t *testing.T) {
	ctx := context.Background()
	services := &MockServiceStore{}
	ledger := newTestLedger(&MockSeatStore{}, services)

	lines := []domain.ServiceLine{{ServiceID: 1, Quantity: 1}, {ServiceID: 2, Quantity: 3}}
	services.On("ReserveUnits", ctx, int64(1), 1).Return(nil)
	services.On("ReserveUnits", ctx, int64(2), 3).Return(domain.ErrInsufficientInventory)
	services.On("ReleaseUnits", ctx, int64(1), 1).Return(nil)

	err := ledger.ReserveServiceUnits(ctx, lines)

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	services.AssertCalled(t, "ReleaseUnits", ctx, int64(1), 1)
	services.AssertNotCalled(t, "ReleaseUnits", ctx, int64(2), 3)
}

func TestLedger_AssignRandomSeats_FewerSeatsThanPassengers(t *testing.T) {
	ctx := context.Background()
	seats := &MockSeatStore{}
	ledger := newTestLedger(seats, &MockServiceStore{})

	passengers := []domain.PassengerInfo{
		{FirstName: "Ada", LastName: "Lovelace"},
		{FirstName: "Alan", LastName: "Turing"},
		{FirstName: "Grace", LastName: "Hopper"},
	}
	seats.On("ListAssignable", ctx, int64(1)).Return([]domain.Seat{economySeat(30, "22B")}, nil)
	seats.On("Reserve", ctx, int64(30)).Return(nil)

	assigned, err := ledger.AssignRandomSeats(ctx, 1, passengers)

	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, 0, assigned[0].PassengerIndex)
	assert.Equal(t, "Ada Lovelace", assigned[0].PassengerName)
	assert.Equal(t, "22B", assigned[0].SeatNumber)
}

func TestLedger_AssignRandomSeats_SkipsTakenAndIneligible(t *testing.T) {
	ctx := context.Background()
	seats := &MockSeatStore{}
	ledger := newTestLedger(seats, &MockServiceStore{})

	legroom := economySeat(2, "12A")
	legroom.IsExtraLegroom = true
	candidates := []domain.Seat{economySeat(1, "10A"), legroom, economySeat(3, "10B"), economySeat(4, "10C")}
	seats.On("ListAssignable", ctx, int64(1)).Return(candidates, nil)
	seats.On("Reserve", ctx, int64(1)).Return(domain.ErrSeatUnavailable)
	seats.On("Reserve", ctx, int64(3)).Return(nil)
	seats.On("Reserve", ctx, int64(4)).Return(nil)

	passengers := []domain.PassengerInfo{{FirstName: "A", LastName: "One"}, {FirstName: "B", LastName: "Two"}}
	assigned, err := ledger.AssignRandomSeats(ctx, 1, passengers)

	require.NoError(t, err)
	require.Len(t, assigned, 2)
	assert.Equal(t, int64(3), assigned[0].SeatID)
	assert.Equal(t, int64(4), assigned[1].SeatID)
	assert.Equal(t, 1, assigned[1].PassengerIndex)
	seats.AssertNotCalled(t, "Reserve", ctx, int64(2))
}

func TestLedger_AssignRandomSeats_StoreFailureReleases(t *testing.T) {
	ctx := context.Background()
	seats := &MockSeatStore{}
	logger, hook := test.NewNullLogger()
	ledger := NewLedger(seats, &MockServiceStore{}, WithShuffle(noShuffle), WithLogger(logger))

	seats.On("ListAssignable", ctx, int64(1)).Return([]domain.Seat{economySeat(1, "10A"), economySeat(2, "10B")}, nil)
	seats.On("Reserve", ctx, int64(1)).Return(nil)
	seats.On("Reserve", ctx, int64(2)).Return(errors.New("connection reset"))
	seats.On("Release", ctx, int64(1)).Return(nil)

	passengers := []domain.PassengerInfo{{LastName: "One"}, {LastName: "Two"}}
	_, err := ledger.AssignRandomSeats(ctx, 1, passengers)

	assert.EqualError(t, err, "connection reset")
	seats.AssertCalled(t, "Release", ctx, int64(1))
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, e.Level)
	}
}
