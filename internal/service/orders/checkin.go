package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/Domenick1991/skylink/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Eligibility is the answer to a speculative check-in question. A negative
// answer is not an error; Reason carries the error kind for callers that
// want to fail on it.
type Eligibility struct {
	Eligible bool
	Message  string
	Order    *domain.Order
	Flight   *domain.Flight
	Reason   error
}

const eligibleMessage = "Eligible for check-in"

func notEligible(kind error, message string) *Eligibility {
	return &Eligibility{Message: message, Reason: domain.NewError(kind, message)}
}

// CheckEligibility uses the booking reference plus a passenger last name as
// the credential. It never mutates anything.
func (s *Service) CheckEligibility(ctx context.Context, orderNumber, lastName string) (*Eligibility, error) {
	order, err := s.orders.GetByNumber(ctx, orderNumber)
	if errors.Is(err, domain.ErrNotFound) {
		return notEligible(domain.ErrNotFound, "Booking not found"), nil
	}
	if err != nil {
		return nil, err
	}

	switch {
	case order.Status == domain.OrderStatusCancelled:
		return notEligible(domain.ErrInvalidState, "Booking has been cancelled"), nil
	case !order.MatchesLastName(lastName):
		return notEligible(domain.ErrAccessDenied, "Passenger name does not match"), nil
	case order.IsCheckedIn:
		return notEligible(domain.ErrInvalidState, "Already checked in for this flight"), nil
	case !order.CanCheckIn:
		return notEligible(domain.ErrInvalidState, "Check-in not yet available"), nil
	case order.FlightID == nil:
		return notEligible(domain.ErrNotFound, "Flight information not found"), nil
	}

	flight, err := s.flights.GetByID(ctx, *order.FlightID)
	if errors.Is(err, domain.ErrNotFound) {
		return notEligible(domain.ErrNotFound, "Flight information not found"), nil
	}
	if err != nil {
		return nil, err
	}
	return &Eligibility{Eligible: true, Message: eligibleMessage, Order: order, Flight: flight}, nil
}

type CheckInInput struct {
	OrderNumber   string `validate:"required"`
	LastName      string `validate:"required"`
	SeatID        *int64 `validate:"omitempty,gt=0"`
	PaymentMethod string
}

type SeatUpgrade struct {
	SeatID     int64
	SeatNumber string
	SeatType   domain.SeatType
	SeatClass  domain.SeatClass
	Price      decimal.Decimal
}

type CheckInResult struct {
	Order            *domain.Order
	SeatUpgrade      *SeatUpgrade
	PaymentProcessed *PaymentDetails
	Message          string
}

// CheckIn re-runs eligibility under the order lock, optionally moves the
// passenger to another seat and marks the order checked in. A priced seat is
// paid from the wallet before anything about the order changes.
func (s *Service) CheckIn(ctx context.Context, input CheckInInput) (*CheckInResult, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	method, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	result := &CheckInResult{Message: "Check-in completed successfully"}
	var releaseSeat int64
	err = s.withOrderLock(ctx, input.OrderNumber, func() error {
		eligibility, err := s.CheckEligibility(ctx, input.OrderNumber, input.LastName)
		if err != nil {
			return err
		}
		if !eligibility.Eligible {
			return eligibility.Reason
		}
		order := eligibility.Order
		if err := ensureMutable(order); err != nil {
			return err
		}
		undo := &compensation{}

		current, hasSeat := order.CurrentSeatID()
		if input.SeatID != nil && (!hasSeat || current != *input.SeatID) {
			upgrade, payment, err := s.changeSeat(ctx, order, *input.SeatID, method, undo)
			if err != nil {
				undo.run(ctx, s.log)
				return err
			}
			result.SeatUpgrade, result.PaymentProcessed = upgrade, payment
			if payment != nil {
				result.Message = fmt.Sprintf("Check-in completed with seat upgrade. Charged $%s total.", payment.Total.StringFixed(2))
			}
			if hasSeat {
				releaseSeat = current
			}
		}

		now := s.now()
		order.IsCheckedIn = true
		order.CheckInTime = &now
		if err := s.orders.Update(ctx, order, nil); err != nil {
			undo.run(ctx, s.log)
			return err
		}
		result.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if releaseSeat != 0 {
		if err := s.inventory.ReleaseSeat(ctx, releaseSeat); err != nil {
			s.log.WithError(err).WithField("seat_id", releaseSeat).Warn("failed to release previous seat")
		}
	}

	fields := logrus.Fields{"order_number": result.Order.OrderNumber, "user_id": result.Order.UserID}
	amount := decimal.Zero
	if result.PaymentProcessed != nil {
		amount = result.PaymentProcessed.Total
		fields["charged"] = amount.StringFixed(2)
	}
	s.log.WithFields(fields).Info("order checked in")
	s.notify(ctx, kafka.EventOrderCheckedIn, result.Order, amount, result.Message)
	return result, nil
}

// changeSeat claims the new seat and charges for it; the order is changed in
// memory only and the previous seat stays held until the order is written.
func (s *Service) changeSeat(ctx context.Context, order *domain.Order, seatID int64, method string, undo *compensation) (*SeatUpgrade, *PaymentDetails, error) {
	seat, err := s.inventory.ReserveSeat(ctx, seatID)
	if err != nil {
		return nil, nil, err
	}
	undo.add(func(ctx context.Context) error { return s.inventory.ReleaseSeat(ctx, seatID) })

	if order.FlightID == nil || seat.FlightID != *order.FlightID {
		return nil, nil, domain.NewError(domain.ErrValidation, "Seat does not belong to this flight")
	}

	var payment *PaymentDetails
	if seat.Price.IsPositive() {
		charge := pricing.PriceSeatUpgrade(seat.Price)
		description := fmt.Sprintf("Seat upgrade to %s for order %s", seat.SeatNumber, order.OrderNumber)
		if _, err := s.debit(ctx, order.UserID, charge.Total, description); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return nil, nil, domain.NewError(domain.ErrInsufficientFunds, "Insufficient wallet balance for seat upgrade")
			}
			return nil, nil, err
		}
		undo.add(func(ctx context.Context) error {
			return s.credit(ctx, order.UserID, charge.Total, "Reversal: "+description)
		})
		payment = &PaymentDetails{Method: method, Amount: charge.Amount, Taxes: charge.Tax, Total: charge.Total}
		order.SeatFees = order.SeatFees.Add(seat.Price)
	}

	previous, _ := order.CurrentSeatID()
	order.SeatID = &seat.ID
	replaced := false
	for i, a := range order.AssignedSeats {
		if a.SeatID == previous {
			moved := domain.NewSeatAssignment(a.PassengerIndex, domain.PassengerInfo{}, *seat)
			moved.PassengerName = a.PassengerName
			order.AssignedSeats[i] = moved
			replaced = true
			break
		}
	}
	if !replaced && len(order.PassengerInfo) > 0 {
		order.AssignedSeats = append(order.AssignedSeats, domain.NewSeatAssignment(0, order.PassengerInfo[0], *seat))
	}
	applyTotals(order)

	return &SeatUpgrade{
		SeatID:     seat.ID,
		SeatNumber: seat.SeatNumber,
		SeatType:   seat.SeatType,
		SeatClass:  seat.SeatClass,
		Price:      seat.Price,
	}, payment, nil
}
