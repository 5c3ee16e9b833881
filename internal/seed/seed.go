// Package seed loads the demo catalogue. It runs only when asked to and is
// safe to run repeatedly.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type FlightStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, f *domain.Flight) error
}

type SeatStore interface {
	CreateBatch(ctx context.Context, seats []domain.Seat) error
}

type ServiceStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, s *domain.Service) error
}

type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
}

type Seeder struct {
	flights  FlightStore
	seats    SeatStore
	services ServiceStore
	users    UserStore
	log      logrus.FieldLogger
	now      func() time.Time
}

func New(flights FlightStore, seats SeatStore, services ServiceStore, users UserStore, log logrus.FieldLogger) *Seeder {
	return &Seeder{flights: flights, seats: seats, services: services, users: users, log: log, now: time.Now}
}

// DemoUser owns a funded wallet so priced operations can be tried out.
func DemoUser(balance decimal.Decimal) domain.User {
	return domain.User{Email: "demo@skylink.example", FirstName: "Demo", LastName: "Traveller", WalletBalance: balance}
}

// Run creates flights with their seat maps, the service catalogue and the demo
// user. Each part is skipped when its table already has rows.
func (s *Seeder) Run(ctx context.Context, walletBalance decimal.Decimal) error {
	if err := s.seedFlights(ctx); err != nil {
		return err
	}
	if err := s.seedServices(ctx); err != nil {
		return err
	}

	user := DemoUser(walletBalance)
	if err := s.users.CreateUser(ctx, &user); err != nil {
		return err
	}
	s.log.WithField("user_id", user.ID).Info("demo user ready")
	return nil
}

func (s *Seeder) seedFlights(ctx context.Context) error {
	n, err := s.flights.Count(ctx)
	if err != nil {
		return fmt.Errorf("count flights: %w", err)
	}
	if n > 0 {
		s.log.WithField("flights", n).Info("flights already present, skipping")
		return nil
	}

	for _, f := range Flights(s.now()) {
		f.TotalSeats, f.AvailableSeats = SeatsPerFlight, SeatsPerFlight
		if err := s.flights.Create(ctx, &f); err != nil {
			return err
		}
		if err := s.seats.CreateBatch(ctx, SeatMap(f.ID)); err != nil {
			return err
		}
		s.log.WithFields(logrus.Fields{"flight": f.FlightNumber, "seats": SeatsPerFlight}).Info("seeded flight")
	}
	return nil
}

func (s *Seeder) seedServices(ctx context.Context) error {
	n, err := s.services.Count(ctx)
	if err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if n > 0 {
		s.log.WithField("services", n).Info("services already present, skipping")
		return nil
	}

	services := Services()
	for i := range services {
		if err := s.services.Create(ctx, &services[i]); err != nil {
			return err
		}
	}
	s.log.WithField("services", len(services)).Info("seeded service catalogue")
	return nil
}
