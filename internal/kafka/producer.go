package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// OrderEvent is published after every order lifecycle change. Money fields are
// decimal strings with two fraction digits.
type OrderEvent struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	OrderNumber   string    `json:"order_number"`
	UserID        int64     `json:"user_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Total         string    `json:"total"`
	Amount        string    `json:"amount,omitempty"`
	Description   string    `json:"description,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	EventOrderCreated   = "order_created"
	EventOrderConfirmed = "order_confirmed"
	EventServicesAdded  = "services_added"
	EventServiceRemoved = "service_removed"
	EventOrderCheckedIn = "order_checked_in"
	EventOrderCancelled = "order_cancelled"
)

type Producer struct {
	brokers []string
	writer  *kafka.Writer
	log     logrus.FieldLogger
}

func NewProducer(brokers []string, log logrus.FieldLogger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
		log:     log,
	}
}

// Publish keys messages by order number so events of one order stay ordered.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.log.WithFields(logrus.Fields{"topic": topic, "key": key}).Debug("published event")
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Brokers(); err != nil {
		return fmt.Errorf("failed to read brokers: %w", err)
	}
	return nil
}
