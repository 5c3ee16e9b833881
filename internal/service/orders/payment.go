package orders

import (
	"context"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DefaultPaymentMethod = "online_booking"

var paymentMethods = map[string]struct{}{
	"online_booking": {},
	"bank_transfer":  {},
	"upi":            {},
	"credit_card":    {},
	"debit_card":     {},
	"wallet":         {},
}

func normalizePaymentMethod(method string) (string, error) {
	if method == "" {
		return DefaultPaymentMethod, nil
	}
	if _, ok := paymentMethods[method]; !ok {
		return "", domain.NewError(domain.ErrValidation, "Invalid payment method")
	}
	return method, nil
}

type CompletePaymentInput struct {
	OrderNumber    string `validate:"required"`
	UserID         int64  `validate:"required,gt=0"`
	PaymentMethod  string
	PaymentDetails map[string]any
}

// CompletePayment confirms the order. It only sets flags, so repeating it is harmless.
func (s *Service) CompletePayment(ctx context.Context, input CompletePaymentInput) (*domain.Order, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	method, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	err = s.withOrderLock(ctx, input.OrderNumber, func() error {
		order, err = s.loadOwned(ctx, input.OrderNumber, input.UserID)
		if err != nil {
			return err
		}
		if err := ensureMutable(order); err != nil {
			return err
		}

		order.Status = domain.OrderStatusConfirmed
		order.PaymentStatus = domain.PaymentStatusPaid
		order.CanCheckIn = true
		order.PaymentMethod = method
		if input.PaymentDetails != nil {
			order.PaymentDetails = input.PaymentDetails
		}
		return s.orders.Update(ctx, order, nil)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_number":   order.OrderNumber,
		"user_id":        order.UserID,
		"payment_method": method,
	}).Info("order payment completed")
	s.notify(ctx, kafka.EventOrderConfirmed, order, decimal.Zero, "")
	return order, nil
}
