package orders

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Cancel refunds the full order total to the wallet and gives every held
// seat and service unit back. The status write happens first and is
// conditional, so a second cancel fails instead of refunding twice.
func (s *Service) Cancel(ctx context.Context, orderID, userID int64) (*domain.Order, error) {
	existing, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, domain.ErrOrderAccessDenied
	}

	var order *domain.Order
	err = s.withOrderLock(ctx, existing.OrderNumber, func() error {
		order, err = s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := ensureMutable(order); err != nil {
			return err
		}

		order.Status = domain.OrderStatusCancelled
		order.PaymentStatus = domain.PaymentStatusRefunded
		order.CanCheckIn = false
		return s.orders.Update(ctx, order, nil)
	})
	if err != nil {
		return nil, err
	}

	log := s.log.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"refunded":     order.Total.StringFixed(2),
	})
	if err := s.credit(ctx, order.UserID, order.Total, fmt.Sprintf("Refund for cancelled order %s", order.OrderNumber)); err != nil {
		log.WithError(err).Error("order cancelled but wallet refund failed")
		return nil, fmt.Errorf("refund cancelled order: %w", err)
	}
	if err := s.inventory.ReleaseSeats(ctx, order.HeldSeatIDs()); err != nil {
		log.WithError(err).Warn("failed to release seats of cancelled order")
	}
	if err := s.inventory.ReleaseServiceUnits(ctx, order.SelectedServices); err != nil {
		log.WithError(err).Warn("failed to return service units of cancelled order")
	}

	log.Info("order cancelled")
	s.notify(ctx, kafka.EventOrderCancelled, order, order.Total, "")
	return order, nil
}
