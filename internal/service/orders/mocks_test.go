package orders

import (
	"context"
	"time"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *domain.Order, added []domain.ServiceLine) error {
	return m.Called(ctx, o, added).Error(0)
}

func (m *MockOrderRepository) ListHistoryByUser(ctx context.Context, userID int64) ([]domain.BookingHistory, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.BookingHistory), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	return m.Called(ctx, f).Error(0)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) List(ctx context.Context, filter repository.ServiceFilter) ([]domain.Service, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockServiceRepository) ReserveUnits(ctx context.Context, id int64, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockServiceRepository) ReleaseUnits(ctx context.Context, id int64, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockServiceRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return m.Called(ctx, s).Error(0)
}

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockWalletRepository) Debit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, userID, amount.StringFixed(2), description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) Credit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, userID, amount.StringFixed(2), description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, userID int64, limit int) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) CreateUser(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) ReserveSeat(ctx context.Context, seatID int64) (*domain.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seat), args.Error(1)
}

func (m *MockInventory) ReserveSeats(ctx context.Context, seatIDs []int64) ([]domain.Seat, error) {
	args := m.Called(ctx, seatIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockInventory) ReleaseSeat(ctx context.Context, seatID int64) error {
	return m.Called(ctx, seatID).Error(0)
}

func (m *MockInventory) ReleaseSeats(ctx context.Context, seatIDs []int64) error {
	return m.Called(ctx, seatIDs).Error(0)
}

func (m *MockInventory) ReserveServiceUnits(ctx context.Context, lines []domain.ServiceLine) error {
	return m.Called(ctx, lines).Error(0)
}

func (m *MockInventory) ReleaseServiceUnits(ctx context.Context, lines []domain.ServiceLine) error {
	return m.Called(ctx, lines).Error(0)
}

func (m *MockInventory) AssignRandomSeats(ctx context.Context, flightID int64, passengers []domain.PassengerInfo) ([]domain.SeatAssignment, error) {
	args := m.Called(ctx, flightID, passengers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatAssignment), args.Error(1)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) AcquireOrderLock(ctx context.Context, orderNumber string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, orderNumber, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockLocker) ReleaseOrderLock(ctx context.Context, orderNumber, token string) error {
	return m.Called(ctx, orderNumber, token).Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	return m.Called(ctx, topic, key, value).Error(0)
}
