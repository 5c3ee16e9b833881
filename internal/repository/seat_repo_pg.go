package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Seat, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error)
	ListAssignable(ctx context.Context, flightID int64) ([]domain.Seat, error)
	Reserve(ctx context.Context, id int64) error
	Release(ctx context.Context, id int64) error
	CreateBatch(ctx context.Context, seats []domain.Seat) error
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

const seatColumns = `id, flight_id, seat_number, seat_type, seat_class, is_available, is_extra_legroom, price`

func scanSeat(row pgx.Row) (*domain.Seat, error) {
	var s domain.Seat
	if err := row.Scan(&s.ID, &s.FlightID, &s.SeatNumber, &s.SeatType, &s.SeatClass, &s.IsAvailable, &s.IsExtraLegroom, &s.Price); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGSeatRepository) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	s, err := scanSeat(r.db.QueryRow(ctx, `SELECT `+seatColumns+` FROM seats WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSeatNotFound
	}
	return s, err
}

func (r *PGSeatRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	return r.list(ctx, `SELECT `+seatColumns+` FROM seats WHERE flight_id=$1 ORDER BY id`, flightID)
}

// ListAssignable returns the seats random assignment may pick from.
func (r *PGSeatRepository) ListAssignable(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	return r.list(ctx, `SELECT `+seatColumns+` FROM seats
		WHERE flight_id=$1 AND seat_type=$2 AND NOT is_extra_legroom AND is_available
		ORDER BY id`, flightID, domain.SeatTypeEconomy)
}

func (r *PGSeatRepository) list(ctx context.Context, query string, args ...any) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		seats = append(seats, *s)
	}
	return seats, rows.Err()
}

// Reserve flips is_available only if it is still true, and keeps the flight's
// available_seats counter in step within the same statement.
func (r *PGSeatRepository) Reserve(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `WITH s AS (
			UPDATE seats SET is_available = false WHERE id=$1 AND is_available RETURNING flight_id
		)
		UPDATE flights SET available_seats = GREATEST(available_seats - 1, 0) FROM s WHERE flights.id = s.flight_id`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrSeatUnavailable
	}
	return nil
}

// Release is idempotent: releasing an available seat changes nothing.
func (r *PGSeatRepository) Release(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `WITH s AS (
			UPDATE seats SET is_available = true WHERE id=$1 AND NOT is_available RETURNING flight_id
		)
		UPDATE flights SET available_seats = LEAST(available_seats + 1, total_seats) FROM s WHERE flights.id = s.flight_id`, id)
	return err
}

func (r *PGSeatRepository) CreateBatch(ctx context.Context, seats []domain.Seat) error {
	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(`INSERT INTO seats (flight_id, seat_number, seat_type, seat_class, is_available, is_extra_legroom, price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (flight_id, seat_number) DO NOTHING`,
			s.FlightID, s.SeatNumber, s.SeatType, s.SeatClass, s.IsAvailable, s.IsExtraLegroom, s.Price)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert seats: %w", err)
	}
	return nil
}

var _ SeatRepository = (*PGSeatRepository)(nil)
