package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Consumer struct {
	reader *kafka.Reader
	log    logrus.FieldLogger
}

func NewConsumer(brokers []string, groupID, topic string, log logrus.FieldLogger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume hands every decoded event to handler and commits it only after the
// handler succeeded. Undecodable messages are logged and committed.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, OrderEvent) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		event, err := DecodeOrderEvent(msg.Value)
		if err != nil {
			c.log.WithError(err).WithField("offset", msg.Offset).Warn("skipping malformed order event")
		} else if err := handler(ctx, event); err != nil {
			return fmt.Errorf("handle %s for %s: %w", event.Type, event.OrderNumber, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func DecodeOrderEvent(data []byte) (OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return OrderEvent{}, err
	}
	if event.Type == "" || event.OrderNumber == "" {
		return OrderEvent{}, fmt.Errorf("order event without type or order number")
	}
	return event, nil
}
