// Package receipt turns order events into customer receipts.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/sirupsen/logrus"
)

type UserLookup interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type Receipt struct {
	To      string
	Subject string
	Body    string
}

// Deliverer hands a receipt to an outbound channel.
type Deliverer interface {
	Deliver(ctx context.Context, r Receipt) error
}

// LogDeliverer writes receipts to the log instead of a mail gateway.
type LogDeliverer struct {
	Log logrus.FieldLogger
}

func (d LogDeliverer) Deliver(_ context.Context, r Receipt) error {
	d.Log.WithFields(logrus.Fields{"to": r.To, "subject": r.Subject}).Info(r.Body)
	return nil
}

type Sender struct {
	users     UserLookup
	deliverer Deliverer
	log       logrus.FieldLogger
}

func NewSender(users UserLookup, deliverer Deliverer, log logrus.FieldLogger) *Sender {
	return &Sender{users: users, deliverer: deliverer, log: log}
}

// Send delivers the receipt for event. Events for unknown users are dropped.
func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	user, err := s.users.GetUser(ctx, event.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.WithFields(logrus.Fields{"user_id": event.UserID, "order_number": event.OrderNumber}).Warn("receipt for unknown user dropped")
		return nil
	}
	if err != nil {
		return err
	}
	return s.deliverer.Deliver(ctx, Compose(user, event))
}

func Compose(user *domain.User, event kafka.OrderEvent) Receipt {
	var b strings.Builder
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = "traveller"
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", name)

	var subject string
	switch event.Type {
	case kafka.EventOrderCreated:
		subject = "Your booking " + event.OrderNumber + " has been created"
		fmt.Fprintf(&b, "We are holding your booking. Total due: $%s.\n", event.Total)
	case kafka.EventOrderConfirmed:
		subject = "Booking " + event.OrderNumber + " confirmed"
		fmt.Fprintf(&b, "Payment received. Total paid: $%s. Online check-in is now open.\n", event.Total)
	case kafka.EventServicesAdded:
		subject = "Services added to " + event.OrderNumber
		fmt.Fprintf(&b, "Added: %s. Charged $%s. New booking total: $%s.\n", event.Description, event.Amount, event.Total)
	case kafka.EventServiceRemoved:
		subject = "Service removed from " + event.OrderNumber
		fmt.Fprintf(&b, "Removed: %s. Refunded $%s. New booking total: $%s.\n", event.Description, event.Amount, event.Total)
	case kafka.EventOrderCheckedIn:
		subject = "Checked in for " + event.OrderNumber
		fmt.Fprintf(&b, "%s\n", event.Description)
	case kafka.EventOrderCancelled:
		subject = "Booking " + event.OrderNumber + " cancelled"
		fmt.Fprintf(&b, "Your booking was cancelled and $%s was refunded to your wallet.\n", event.Amount)
	default:
		subject = "Update on booking " + event.OrderNumber
		fmt.Fprintf(&b, "Status: %s.\n", event.Status)
	}
	b.WriteString("\nSkyLink Airlines")

	return Receipt{To: user.Email, Subject: subject, Body: b.String()}
}
