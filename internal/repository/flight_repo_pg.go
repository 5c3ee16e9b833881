package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, f *domain.Flight) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline, departure_airport, arrival_airport, departure_time, arrival_time, duration, aircraft, stops, price, available_seats, total_seats, class`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.Duration, &f.Aircraft, &f.Stops, &f.Price, &f.AvailableSeats, &f.TotalSeats, &f.Class); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	return f, err
}

func (r *PGFlightRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM flights`).Scan(&n)
	return n, err
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, departure_airport, arrival_airport, departure_time, arrival_time, duration, aircraft, stops, price, available_seats, total_seats, class)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`, f.FlightNumber, f.Airline, f.DepartureAirport, f.ArrivalAirport, f.DepartureTime, f.ArrivalTime, f.Duration, f.Aircraft, f.Stops, f.Price, f.AvailableSeats, f.TotalSeats, f.Class).
		Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("insert flight %s: %w", f.FlightNumber, err)
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
