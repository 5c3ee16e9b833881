package orders

import (
	"context"
	"errors"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/Domenick1991/skylink/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ServiceSelection struct {
	ServiceID int64 `json:"serviceId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gte=0"`
}

type CreateOrderInput struct {
	UserID     int64                  `validate:"required,gt=0"`
	FlightID   *int64                 `validate:"omitempty,gt=0"`
	Passengers []domain.PassengerInfo `validate:"required,min=1,dive"`
	Services   []ServiceSelection     `validate:"dive"`
	SeatIDs    []int64                `validate:"dive,gt=0"`
}

func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	return s.create(ctx, input, domain.OrderStatusPending)
}

// CreateDraft is the checkout variant: same pricing and seat rules, but the
// order waits in pending_payment.
func (s *Service) CreateDraft(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	return s.create(ctx, input, domain.OrderStatusPendingPayment)
}

func (s *Service) create(ctx context.Context, input CreateOrderInput, status domain.OrderStatus) (*domain.Order, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if len(input.SeatIDs) > len(input.Passengers) {
		return nil, domain.NewError(domain.ErrValidation, "More seats selected than passengers")
	}

	flight, err := s.lookupFlight(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	lines, err := s.resolveServices(ctx, input.Services)
	if err != nil {
		return nil, err
	}

	undo := &compensation{}
	order, err := s.reserveAndBuild(ctx, input, flight, lines, undo)
	if err != nil {
		undo.run(ctx, s.log)
		return nil, err
	}
	order.Status = status

	if err := s.insertWithFreshNumber(ctx, order); err != nil {
		undo.run(ctx, s.log)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"status":       order.Status,
		"passengers":   order.PassengerCount,
		"total":        order.Total.StringFixed(2),
	}).Info("order created")
	s.notify(ctx, kafka.EventOrderCreated, order, decimal.Zero, "")
	return order, nil
}

// lookupFlight tolerates a missing flight: the order is then priced without a fare.
func (s *Service) lookupFlight(ctx context.Context, flightID *int64) (*domain.Flight, error) {
	if flightID == nil {
		return nil, nil
	}
	flight, err := s.flights.GetByID(ctx, *flightID)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.WithField("flight_id", *flightID).Warn("order references unknown flight, pricing without fare")
		return nil, nil
	}
	return flight, err
}

// resolveServices snapshots current catalog prices; client-sent prices are never trusted.
func (s *Service) resolveServices(ctx context.Context, selections []ServiceSelection) ([]domain.ServiceLine, error) {
	if len(selections) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(selections))
	seen := make(map[int64]struct{}, len(selections))
	for _, sel := range selections {
		if _, dup := seen[sel.ServiceID]; dup {
			return nil, domain.ErrServiceAlreadyAdded
		}
		seen[sel.ServiceID] = struct{}{}
		ids = append(ids, sel.ServiceID)
	}

	found, err := s.services.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	lines := make([]domain.ServiceLine, 0, len(selections))
	for _, sel := range selections {
		svc, ok := byID[sel.ServiceID]
		if !ok || !svc.IsActive {
			return nil, domain.ErrServiceNotFound
		}
		lines = append(lines, domain.NewServiceLine(svc, sel.Quantity))
	}
	return lines, nil
}

// reserveAndBuild claims seats and service stock before anything is priced or
// persisted, registering an undo step for each claim.
func (s *Service) reserveAndBuild(ctx context.Context, input CreateOrderInput, flight *domain.Flight, lines []domain.ServiceLine, undo *compensation) (*domain.Order, error) {
	order := &domain.Order{
		UserID:           input.UserID,
		PaymentStatus:    domain.PaymentStatusPending,
		PassengerInfo:    input.Passengers,
		PassengerCount:   len(input.Passengers),
		SelectedServices: lines,
		Fare:             decimal.Zero,
		SeatFees:         decimal.Zero,
	}
	if flight != nil {
		order.FlightID = &flight.ID
		order.Fare = flight.Price
	}

	if len(input.SeatIDs) > 0 {
		seats, err := s.inventory.ReserveSeats(ctx, input.SeatIDs)
		if err != nil {
			return nil, err
		}
		ids := append([]int64(nil), input.SeatIDs...)
		undo.add(func(ctx context.Context) error { return s.inventory.ReleaseSeats(ctx, ids) })

		fees := make([]decimal.Decimal, 0, len(seats))
		for i, seat := range seats {
			if flight != nil && seat.FlightID != flight.ID {
				return nil, domain.NewError(domain.ErrValidation, "Seat "+seat.SeatNumber+" does not belong to this flight")
			}
			fees = append(fees, seat.Price)
			order.AssignedSeats = append(order.AssignedSeats, domain.NewSeatAssignment(i, input.Passengers[i], seat))
		}
		order.SeatID = &seats[0].ID
		order.SeatFees = pricing.Sum(fees)
	}

	if err := s.inventory.ReserveServiceUnits(ctx, lines); err != nil {
		return nil, err
	}
	undo.add(func(ctx context.Context) error { return s.inventory.ReleaseServiceUnits(ctx, lines) })

	if len(input.SeatIDs) == 0 && flight != nil {
		assigned, err := s.inventory.AssignRandomSeats(ctx, flight.ID, input.Passengers)
		if err != nil {
			return nil, err
		}
		undo.add(func(ctx context.Context) error { return s.inventory.ReleaseSeats(ctx, assignmentSeatIDs(assigned)) })
		order.AssignedSeats = assigned
	}

	applyTotals(order)
	return order, nil
}

func (s *Service) insertWithFreshNumber(ctx context.Context, order *domain.Order) error {
	var err error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = s.orderNumber(attempt)
		err = s.orders.Create(ctx, order)
		if !errors.Is(err, domain.ErrOrderNumberTaken) {
			return err
		}
		s.log.WithField("order_number", order.OrderNumber).Debug("order number taken, retrying")
	}
	return err
}

func assignmentSeatIDs(assigned []domain.SeatAssignment) []int64 {
	ids := make([]int64, 0, len(assigned))
	for _, a := range assigned {
		ids = append(ids, a.SeatID)
	}
	return ids
}
