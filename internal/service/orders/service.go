// Package orders is the order lifecycle manager: it owns every order state
// transition and drives pricing, inventory and wallet changes around it.
package orders

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	CreateDraft(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	CompletePayment(ctx context.Context, input CompletePaymentInput) (*domain.Order, error)
	AddServices(ctx context.Context, input AddServicesInput) (*AddServicesResult, error)
	RemoveService(ctx context.Context, input RemoveServiceInput) (*RemoveServiceResult, error)
	CheckEligibility(ctx context.Context, orderNumber, lastName string) (*Eligibility, error)
	CheckIn(ctx context.Context, input CheckInInput) (*CheckInResult, error)
	Cancel(ctx context.Context, orderID, userID int64) (*domain.Order, error)
	GetOrder(ctx context.Context, orderNumber string, userID int64) (*domain.Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	GetWallet(ctx context.Context, userID int64) (*Wallet, error)
	ListBookingHistory(ctx context.Context, userID int64) ([]domain.BookingHistory, error)
}

// Inventory is the slice of the inventory ledger the lifecycle needs.
type Inventory interface {
	ReserveSeat(ctx context.Context, seatID int64) (*domain.Seat, error)
	ReserveSeats(ctx context.Context, seatIDs []int64) ([]domain.Seat, error)
	ReleaseSeat(ctx context.Context, seatID int64) error
	ReleaseSeats(ctx context.Context, seatIDs []int64) error
	ReserveServiceUnits(ctx context.Context, lines []domain.ServiceLine) error
	ReleaseServiceUnits(ctx context.Context, lines []domain.ServiceLine) error
	AssignRandomSeats(ctx context.Context, flightID int64, passengers []domain.PassengerInfo) ([]domain.SeatAssignment, error)
}

type Locker interface {
	AcquireOrderLock(ctx context.Context, orderNumber string, ttl time.Duration) (string, bool, error)
	ReleaseOrderLock(ctx context.Context, orderNumber, token string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Service struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	services           repository.ServiceRepository
	wallets            repository.WalletRepository
	inventory          Inventory
	locker             Locker
	producer           Producer
	orderTopic         string
	notificationsTopic string
	lockTTL            time.Duration
	validate           *validator.Validate
	log                logrus.FieldLogger
	now                func() time.Time
	orderNumber        func(attempt int) string
}

type Option func(*Service)

func WithLocker(locker Locker, ttl time.Duration) Option {
	return func(s *Service) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

func WithProducer(producer Producer, orderTopic string) Option {
	return func(s *Service) {
		s.producer = producer
		s.orderTopic = orderTopic
	}
}

func WithNotificationsTopic(topic string) Option {
	return func(s *Service) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithOrderNumbers(next func(attempt int) string) Option {
	return func(s *Service) {
		s.orderNumber = next
	}
}

func NewService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	services repository.ServiceRepository,
	wallets repository.WalletRepository,
	inventory Inventory,
	opts ...Option,
) *Service {
	s := &Service{
		orders:    orders,
		flights:   flights,
		services:  services,
		wallets:   wallets,
		inventory: inventory,
		lockTTL:   10 * time.Second,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		log:       logrus.StandardLogger(),
		now:       time.Now,
	}
	s.orderNumber = s.defaultOrderNumber
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultOrderNumber derives SL plus the last six digits of the clock in
// milliseconds; retries after a collision append two random digits.
func (s *Service) defaultOrderNumber(attempt int) string {
	suffix := s.now().UnixMilli() % 1_000_000
	if attempt == 0 {
		return fmt.Sprintf("SL%06d", suffix)
	}
	return fmt.Sprintf("SL%06d%02d", suffix, rand.IntN(100))
}

const maxOrderNumberAttempts = 5

func (s *Service) validateInput(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
		return domain.NewError(domain.ErrValidation, "Invalid request: "+strings.Join(fields, "; "))
	}
	return domain.NewError(domain.ErrValidation, err.Error())
}

// withOrderLock serializes mutations of one order across instances. Without a
// locker the optimistic update check in the repository is the only guard.
func (s *Service) withOrderLock(ctx context.Context, orderNumber string, fn func() error) error {
	if s.locker == nil {
		return fn()
	}
	token, ok, err := s.locker.AcquireOrderLock(ctx, orderNumber, s.lockTTL)
	if err != nil {
		return fmt.Errorf("acquire order lock: %w", err)
	}
	if !ok {
		return domain.ErrOrderBusy
	}
	defer func() {
		if err := s.locker.ReleaseOrderLock(context.WithoutCancel(ctx), orderNumber, token); err != nil {
			s.log.WithError(err).WithField("order_number", orderNumber).Warn("failed to release order lock")
		}
	}()
	return fn()
}

// loadOwned fetches an order by number and checks that userID owns it.
func (s *Service) loadOwned(ctx context.Context, orderNumber string, userID int64) (*domain.Order, error) {
	order, err := s.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderAccessDenied
	}
	return order, nil
}

func ensureMutable(order *domain.Order) error {
	switch order.Status {
	case domain.OrderStatusCancelled:
		return domain.ErrOrderCancelled
	case domain.OrderStatusCompleted:
		return domain.ErrOrderClosed
	}
	return nil
}

// debit charges the wallet unless amount is zero.
func (s *Service) debit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (bool, error) {
	if !amount.IsPositive() {
		return false, nil
	}
	if _, err := s.wallets.Debit(ctx, userID, amount, description); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) credit(ctx context.Context, userID int64, amount decimal.Decimal, description string) error {
	if !amount.IsPositive() {
		return nil
	}
	_, err := s.wallets.Credit(ctx, userID, amount, description)
	return err
}

// compensation collects undo steps for a multi-step operation and runs them in
// reverse order when the operation fails.
type compensation struct {
	steps []func(ctx context.Context) error
}

func (c *compensation) add(step func(ctx context.Context) error) {
	c.steps = append(c.steps, step)
}

func (c *compensation) run(ctx context.Context, log logrus.FieldLogger) {
	ctx = context.WithoutCancel(ctx)
	for i := len(c.steps) - 1; i >= 0; i-- {
		if err := c.steps[i](ctx); err != nil {
			log.WithError(err).Error("compensation step failed")
		}
	}
}

var _ UseCase = (*Service)(nil)
