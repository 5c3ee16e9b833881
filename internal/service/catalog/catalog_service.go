package catalog

import (
	"context"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/repository"
	"github.com/sirupsen/logrus"
)

type UseCase interface {
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	ListFlightSeats(ctx context.Context, flightID int64) ([]domain.Seat, error)
	ListServices(ctx context.Context, phase domain.ServicePhase) ([]domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetServices(ctx context.Context, phase domain.ServicePhase) ([]domain.Service, error)
	SetServices(ctx context.Context, phase domain.ServicePhase, services []domain.Service) error
}

// Service is the read side of the catalog. Seat maps are never cached since
// availability is what callers come for.
type Service struct {
	flights  repository.FlightRepository
	seats    repository.SeatRepository
	services repository.ServiceRepository
	cache    Cache
	log      logrus.FieldLogger
}

func NewService(flights repository.FlightRepository, seats repository.SeatRepository, services repository.ServiceRepository, cache Cache, log logrus.FieldLogger) *Service {
	return &Service{flights: flights, seats: seats, services: services, cache: cache, log: log}
}

func (s *Service) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.WithError(err).Debug("failed to cache flights")
		}
	}
	return flights, nil
}

func (s *Service) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *Service) ListFlightSeats(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	return s.seats.ListByFlight(ctx, flightID)
}

// ListServices returns active services, optionally for one phase only.
func (s *Service) ListServices(ctx context.Context, phase domain.ServicePhase) ([]domain.Service, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetServices(ctx, phase); err == nil && cached != nil {
			return cached, nil
		}
	}

	services, err := s.services.List(ctx, repository.ServiceFilter{Phase: phase, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetServices(ctx, phase, services); err != nil {
			s.log.WithError(err).Debug("failed to cache services")
		}
	}
	return services, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	return s.services.GetByID(ctx, id)
}

var _ UseCase = (*Service)(nil)
