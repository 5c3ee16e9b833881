package orders

import (
	"context"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *Service) publish(ctx context.Context, eventType string, order *domain.Order, amount decimal.Decimal, description string) error {
	if s.producer == nil || s.orderTopic == "" {
		return nil
	}
	event := kafka.OrderEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Total:         order.Total.StringFixed(2),
		Description:   description,
		OccurredAt:    s.now(),
	}
	if !amount.IsZero() {
		event.Amount = amount.StringFixed(2)
	}
	if err := s.producer.Publish(ctx, s.orderTopic, order.OrderNumber, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, order.OrderNumber, event)
	}
	return nil
}

// notify publishes without failing the already committed operation.
func (s *Service) notify(ctx context.Context, eventType string, order *domain.Order, amount decimal.Decimal, description string) {
	if err := s.publish(ctx, eventType, order, amount, description); err != nil {
		s.log.WithError(err).WithField("order_number", order.OrderNumber).Warnf("failed to publish %s event", eventType)
	}
}
