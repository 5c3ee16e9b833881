package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/Domenick1991/skylink/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AddServicesInput struct {
	OrderNumber   string             `validate:"required"`
	UserID        int64              `validate:"required,gt=0"`
	Services      []ServiceSelection `validate:"required,min=1,dive"`
	PaymentMethod string
}

type PaymentDetails struct {
	Method   string
	Amount   decimal.Decimal
	Taxes    decimal.Decimal
	Total    decimal.Decimal
	Services []string
}

type AddServicesResult struct {
	Order         *domain.Order
	AddedServices []domain.ServiceLine
	Payment       PaymentDetails
}

type RemoveServiceInput struct {
	OrderNumber string `validate:"required"`
	UserID      int64  `validate:"required,gt=0"`
	ServiceID   int64  `validate:"required,gt=0"`
}

const RefundToOriginalPaymentMethod = "original_payment_method"

type RefundDetails struct {
	ServiceName  string
	ServicePrice decimal.Decimal
	Amount       decimal.Decimal
	TaxRefund    decimal.Decimal
	TotalRefund  decimal.Decimal
	RefundMethod string
}

type RemoveServiceResult struct {
	Order  *domain.Order
	Refund RefundDetails
}

// AddServices validates every requested service, takes stock, charges the
// wallet for the delta and only then writes the order.
func (s *Service) AddServices(ctx context.Context, input AddServicesInput) (*AddServicesResult, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	method, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var result *AddServicesResult
	err = s.withOrderLock(ctx, input.OrderNumber, func() error {
		order, err := s.loadOwned(ctx, input.OrderNumber, input.UserID)
		if err != nil {
			return err
		}
		if err := ensureMutable(order); err != nil {
			return err
		}

		lines, err := s.resolveServices(ctx, input.Services)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if order.HasService(l.ServiceID) {
				return domain.ErrServiceAlreadyAdded
			}
		}

		undo := &compensation{}
		if err := s.inventory.ReserveServiceUnits(ctx, lines); err != nil {
			return err
		}
		undo.add(func(ctx context.Context) error { return s.inventory.ReleaseServiceUnits(ctx, lines) })

		charge := pricing.PriceAdditionalServices(lines)
		description := fmt.Sprintf("Payment via %s for additional services on order %s", method, order.OrderNumber)
		charged, err := s.debit(ctx, order.UserID, charge.Total, description)
		if err != nil {
			undo.run(ctx, s.log)
			return err
		}
		if charged {
			undo.add(func(ctx context.Context) error {
				return s.credit(ctx, order.UserID, charge.Total, "Reversal: "+description)
			})
		}

		order.SelectedServices = append(order.SelectedServices, lines...)
		applyTotals(order)
		if err := s.orders.Update(ctx, order, lines); err != nil {
			undo.run(ctx, s.log)
			return err
		}

		result = &AddServicesResult{
			Order:         order,
			AddedServices: lines,
			Payment: PaymentDetails{
				Method:   method,
				Amount:   charge.Amount,
				Taxes:    charge.Tax,
				Total:    charge.Total,
				Services: lineNames(lines),
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_number": result.Order.OrderNumber,
		"user_id":      result.Order.UserID,
		"charged":      result.Payment.Total.StringFixed(2),
		"total":        result.Order.Total.StringFixed(2),
	}).Info("services added to order")
	s.notify(ctx, kafka.EventServicesAdded, result.Order, result.Payment.Total, strings.Join(result.Payment.Services, ", "))
	return result, nil
}

// RemoveService drops one line, refunds its price plus tax to the wallet and
// returns its units to stock. The order is written first so a repeated
// removal cannot refund twice.
func (s *Service) RemoveService(ctx context.Context, input RemoveServiceInput) (*RemoveServiceResult, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var result *RemoveServiceResult
	err := s.withOrderLock(ctx, input.OrderNumber, func() error {
		order, err := s.loadOwned(ctx, input.OrderNumber, input.UserID)
		if err != nil {
			return err
		}
		if err := ensureMutable(order); err != nil {
			return err
		}
		line, ok := order.ServiceLine(input.ServiceID)
		if !ok {
			return domain.ErrServiceNotInOrder
		}

		refund := pricing.PriceServiceRemoval(line)
		order.SelectedServices = order.WithoutService(input.ServiceID)
		applyTotals(order)
		if err := s.orders.Update(ctx, order, nil); err != nil {
			return err
		}

		description := fmt.Sprintf("Refund for %s removed from order %s", line.Name, order.OrderNumber)
		if err := s.credit(ctx, order.UserID, refund.Total, description); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"order_number": order.OrderNumber,
				"amount":       refund.Total.StringFixed(2),
			}).Error("service removed but wallet refund failed")
			return fmt.Errorf("refund removed service: %w", err)
		}
		if err := s.inventory.ReleaseServiceUnits(ctx, []domain.ServiceLine{line}); err != nil {
			s.log.WithError(err).WithField("service_id", line.ServiceID).Warn("failed to return service units")
		}

		result = &RemoveServiceResult{
			Order: order,
			Refund: RefundDetails{
				ServiceName:  line.Name,
				ServicePrice: line.Price,
				Amount:       refund.Amount,
				TaxRefund:    refund.Tax,
				TotalRefund:  refund.Total,
				RefundMethod: RefundToOriginalPaymentMethod,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_number": result.Order.OrderNumber,
		"user_id":      result.Order.UserID,
		"refunded":     result.Refund.TotalRefund.StringFixed(2),
		"total":        result.Order.Total.StringFixed(2),
	}).Info("service removed from order")
	s.notify(ctx, kafka.EventServiceRemoved, result.Order, result.Refund.TotalRefund, result.Refund.ServiceName)
	return result, nil
}

func applyTotals(order *domain.Order) {
	totals := pricing.PriceOrder(order)
	order.Subtotal, order.Taxes, order.Total = totals.Subtotal, totals.Taxes, totals.Total
}

func lineNames(lines []domain.ServiceLine) []string {
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		names = append(names, l.Name)
	}
	return names
}
