package api

import (
	"context"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/service/catalog"
	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/stretchr/testify/mock"
)

type MockOrderUseCase struct {
	mock.Mock
}

var _ orders.UseCase = (*MockOrderUseCase)(nil)

func (m *MockOrderUseCase) order(args mock.Arguments) (*domain.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, input orders.CreateOrderInput) (*domain.Order, error) {
	return m.order(m.Called(ctx, input))
}

func (m *MockOrderUseCase) CreateDraft(ctx context.Context, input orders.CreateOrderInput) (*domain.Order, error) {
	return m.order(m.Called(ctx, input))
}

func (m *MockOrderUseCase) CompletePayment(ctx context.Context, input orders.CompletePaymentInput) (*domain.Order, error) {
	return m.order(m.Called(ctx, input))
}

func (m *MockOrderUseCase) AddServices(ctx context.Context, input orders.AddServicesInput) (*orders.AddServicesResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.AddServicesResult), args.Error(1)
}

func (m *MockOrderUseCase) RemoveService(ctx context.Context, input orders.RemoveServiceInput) (*orders.RemoveServiceResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.RemoveServiceResult), args.Error(1)
}

func (m *MockOrderUseCase) CheckEligibility(ctx context.Context, orderNumber, lastName string) (*orders.Eligibility, error) {
	args := m.Called(ctx, orderNumber, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Eligibility), args.Error(1)
}

func (m *MockOrderUseCase) CheckIn(ctx context.Context, input orders.CheckInInput) (*orders.CheckInResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.CheckInResult), args.Error(1)
}

func (m *MockOrderUseCase) Cancel(ctx context.Context, orderID, userID int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID, userID))
}

func (m *MockOrderUseCase) GetOrder(ctx context.Context, orderNumber string, userID int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderNumber, userID))
}

func (m *MockOrderUseCase) ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) GetWallet(ctx context.Context, userID int64) (*orders.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Wallet), args.Error(1)
}

func (m *MockOrderUseCase) ListBookingHistory(ctx context.Context, userID int64) ([]domain.BookingHistory, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.BookingHistory), args.Error(1)
}

type MockCatalogUseCase struct {
	mock.Mock
}

var _ catalog.UseCase = (*MockCatalogUseCase)(nil)

func (m *MockCatalogUseCase) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCatalogUseCase) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockCatalogUseCase) ListFlightSeats(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockCatalogUseCase) ListServices(ctx context.Context, phase domain.ServicePhase) ([]domain.Service, error) {
	args := m.Called(ctx, phase)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockCatalogUseCase) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}
