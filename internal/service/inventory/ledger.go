// Package inventory owns seat availability and service stock. Every claim goes
// through a single conditional write in the store, so two callers can never
// both win the same seat or the last unit of a service.
package inventory

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/sirupsen/logrus"
)

type SeatStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Seat, error)
	ListAssignable(ctx context.Context, flightID int64) ([]domain.Seat, error)
	Reserve(ctx context.Context, id int64) error
	Release(ctx context.Context, id int64) error
}

type ServiceStore interface {
	ReserveUnits(ctx context.Context, id int64, quantity int) error
	ReleaseUnits(ctx context.Context, id int64, quantity int) error
}

// ServiceCache is told when stock changed so cached listings can be dropped.
type ServiceCache interface {
	InvalidateServices(ctx context.Context) error
}

type Ledger struct {
	seats    SeatStore
	services ServiceStore
	cache    ServiceCache
	shuffle  func(seats []domain.Seat)
	log      logrus.FieldLogger
}

type LedgerOption func(*Ledger)

func WithServiceCache(cache ServiceCache) LedgerOption {
	return func(l *Ledger) {
		l.cache = cache
	}
}

func WithShuffle(shuffle func(seats []domain.Seat)) LedgerOption {
	return func(l *Ledger) {
		l.shuffle = shuffle
	}
}

func WithLogger(log logrus.FieldLogger) LedgerOption {
	return func(l *Ledger) {
		l.log = log
	}
}

func NewLedger(seats SeatStore, services ServiceStore, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		seats:    seats,
		services: services,
		shuffle:  shuffleSeats,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func shuffleSeats(seats []domain.Seat) {
	rand.Shuffle(len(seats), func(i, j int) { seats[i], seats[j] = seats[j], seats[i] })
}

// ReserveSeat claims the seat and returns it as it was priced at claim time.
func (l *Ledger) ReserveSeat(ctx context.Context, seatID int64) (*domain.Seat, error) {
	seat, err := l.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if !seat.IsAvailable {
		return nil, domain.ErrSeatUnavailable
	}
	if err := l.seats.Reserve(ctx, seatID); err != nil {
		return nil, err
	}
	seat.IsAvailable = false
	return seat, nil
}

func (l *Ledger) ReleaseSeat(ctx context.Context, seatID int64) error {
	return l.seats.Release(ctx, seatID)
}

// ReserveSeats claims all seats or none: on the first failure every seat
// already claimed by this call is released again.
func (l *Ledger) ReserveSeats(ctx context.Context, seatIDs []int64) ([]domain.Seat, error) {
	reserved := make([]domain.Seat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, err := l.ReserveSeat(ctx, id)
		if err != nil {
			l.releaseSeats(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, *seat)
	}
	return reserved, nil
}

func (l *Ledger) releaseSeats(ctx context.Context, seats []domain.Seat) {
	ids := make([]int64, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, s.ID)
	}
	if err := l.ReleaseSeats(ctx, ids); err != nil {
		l.log.WithError(err).Warn("rollback of reserved seats failed")
	}
}

// ReleaseSeats attempts every release and reports all failures.
func (l *Ledger) ReleaseSeats(ctx context.Context, seatIDs []int64) error {
	var errs []error
	for _, id := range seatIDs {
		if err := l.seats.Release(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReserveServiceUnits takes stock for every line or for none of them.
func (l *Ledger) ReserveServiceUnits(ctx context.Context, lines []domain.ServiceLine) error {
	if len(lines) == 0 {
		return nil
	}
	for i, line := range lines {
		if err := l.services.ReserveUnits(ctx, line.ServiceID, line.Units()); err != nil {
			if rbErr := l.releaseUnits(ctx, lines[:i]); rbErr != nil {
				l.log.WithError(rbErr).Warn("rollback of reserved service units failed")
			}
			return err
		}
	}
	l.invalidate(ctx)
	return nil
}

func (l *Ledger) ReleaseServiceUnits(ctx context.Context, lines []domain.ServiceLine) error {
	if len(lines) == 0 {
		return nil
	}
	err := l.releaseUnits(ctx, lines)
	l.invalidate(ctx)
	return err
}

func (l *Ledger) releaseUnits(ctx context.Context, lines []domain.ServiceLine) error {
	var errs []error
	for _, line := range lines {
		if err := l.services.ReleaseUnits(ctx, line.ServiceID, line.Units()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Ledger) invalidate(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.InvalidateServices(ctx); err != nil {
		l.log.WithError(err).Debug("service cache invalidation failed")
	}
}

// AssignRandomSeats gives each passenger, in order, a random standard economy
// seat. When the flight runs out the remaining passengers stay unassigned.
func (l *Ledger) AssignRandomSeats(ctx context.Context, flightID int64, passengers []domain.PassengerInfo) ([]domain.SeatAssignment, error) {
	candidates, err := l.seats.ListAssignable(ctx, flightID)
	if err != nil {
		return nil, err
	}
	l.shuffle(candidates)

	assigned := make([]domain.SeatAssignment, 0, len(passengers))
	next := 0
	for _, seat := range candidates {
		if next == len(passengers) {
			break
		}
		if !seat.RandomlyAssignable() {
			continue
		}
		if err := l.seats.Reserve(ctx, seat.ID); err != nil {
			if errors.Is(err, domain.ErrUnavailable) {
				continue
			}
			l.releaseAssignments(ctx, assigned)
			return nil, err
		}
		seat.IsAvailable = false
		assigned = append(assigned, domain.NewSeatAssignment(next, passengers[next], seat))
		next++
	}

	if next < len(passengers) {
		l.log.WithFields(logrus.Fields{
			"flight_id":  flightID,
			"passengers": len(passengers),
			"assigned":   next,
		}).Info("not enough seats for random assignment")
	}
	return assigned, nil
}

func (l *Ledger) releaseAssignments(ctx context.Context, assigned []domain.SeatAssignment) {
	ids := make([]int64, 0, len(assigned))
	for _, a := range assigned {
		ids = append(ids, a.SeatID)
	}
	if err := l.ReleaseSeats(ctx, ids); err != nil {
		l.log.WithError(err).Warn("rollback of assigned seats failed")
	}
}
