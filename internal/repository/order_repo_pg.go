package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	// Create inserts the order and one booking history row per selected
	// service. A taken order number yields domain.ErrOrderNumberTaken.
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	// Update persists every mutable field if the row has not changed since o
	// was read, recording history for added service lines.
	Update(ctx context.Context, o *domain.Order, added []domain.ServiceLine) error
	ListHistoryByUser(ctx context.Context, userID int64) ([]domain.BookingHistory, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

const orderColumns = `id, order_number, user_id, flight_id, seat_id, status, payment_status, payment_method, payment_details,
	passenger_info, assigned_seats, selected_services, fare, passenger_count, seat_fees, subtotal, taxes, total,
	can_check_in, is_checked_in, check_in_time, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.FlightID, &o.SeatID, &o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.PaymentDetails,
		&o.PassengerInfo, &o.AssignedSeats, &o.SelectedServices, &o.Fare, &o.PassengerCount, &o.SeatFees, &o.Subtotal, &o.Taxes, &o.Total,
		&o.CanCheckIn, &o.IsCheckedIn, &o.CheckInTime, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// jsonLists substitutes empty lists so JSONB columns never hold null.
func jsonLists(o *domain.Order) ([]domain.PassengerInfo, []domain.SeatAssignment, []domain.ServiceLine, map[string]any) {
	passengers, seats, services, details := o.PassengerInfo, o.AssignedSeats, o.SelectedServices, o.PaymentDetails
	if passengers == nil {
		passengers = []domain.PassengerInfo{}
	}
	if seats == nil {
		seats = []domain.SeatAssignment{}
	}
	if services == nil {
		services = []domain.ServiceLine{}
	}
	if details == nil {
		details = map[string]any{}
	}
	return passengers, seats, services, details
}

func (r *PGOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	passengers, seats, services, details := jsonLists(o)
	err = tx.QueryRow(ctx, `INSERT INTO orders (order_number, user_id, flight_id, seat_id, status, payment_status, payment_method, payment_details,
			passenger_info, assigned_seats, selected_services, fare, passenger_count, seat_fees, subtotal, taxes, total, can_check_in, is_checked_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at`,
		o.OrderNumber, o.UserID, o.FlightID, o.SeatID, o.Status, o.PaymentStatus, o.PaymentMethod, details,
		passengers, seats, services, o.Fare, o.PassengerCount, o.SeatFees, o.Subtotal, o.Taxes, o.Total, o.CanCheckIn, o.IsCheckedIn).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderNumberTaken
		}
		return fmt.Errorf("insert order: %w", err)
	}

	if err := insertHistory(ctx, tx, o, o.SelectedServices); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertHistory(ctx context.Context, tx pgx.Tx, o *domain.Order, lines []domain.ServiceLine) error {
	for _, l := range lines {
		if _, err := tx.Exec(ctx, `INSERT INTO booking_history (user_id, service_id, order_id) VALUES ($1, $2, $3)`, o.UserID, l.ServiceID, o.ID); err != nil {
			return fmt.Errorf("insert booking history: %w", err)
		}
	}
	return nil
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
}

func (r *PGOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, orderNumber)
}

func (r *PGOrderRepository) get(ctx context.Context, query string, arg any) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	return o, err
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *PGOrderRepository) Update(ctx context.Context, o *domain.Order, added []domain.ServiceLine) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	passengers, seats, services, details := jsonLists(o)
	err = tx.QueryRow(ctx, `UPDATE orders SET
			seat_id=$2, status=$3, payment_status=$4, payment_method=$5, payment_details=$6,
			passenger_info=$7, assigned_seats=$8, selected_services=$9, seat_fees=$10,
			subtotal=$11, taxes=$12, total=$13, can_check_in=$14, is_checked_in=$15, check_in_time=$16,
			updated_at=clock_timestamp()
		WHERE id=$1 AND updated_at=$17
		RETURNING updated_at`,
		o.ID, o.SeatID, o.Status, o.PaymentStatus, o.PaymentMethod, details,
		passengers, seats, services, o.SeatFees,
		o.Subtotal, o.Taxes, o.Total, o.CanCheckIn, o.IsCheckedIn, o.CheckInTime, o.UpdatedAt).
		Scan(&o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrOrderStale
	}
	if err != nil {
		return fmt.Errorf("update order %s: %w", o.OrderNumber, err)
	}

	if err := insertHistory(ctx, tx, o, added); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGOrderRepository) ListHistoryByUser(ctx context.Context, userID int64) ([]domain.BookingHistory, error) {
	rows, err := r.db.Query(ctx, `SELECT h.id, h.user_id, h.service_id, s.name, h.order_id, o.order_number, h.timestamp
		FROM booking_history h
		JOIN services s ON s.id = h.service_id
		JOIN orders o ON o.id = h.order_id
		WHERE h.user_id=$1
		ORDER BY h.timestamp DESC, h.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]domain.BookingHistory, 0)
	for rows.Next() {
		var h domain.BookingHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.ServiceID, &h.ServiceName, &h.OrderID, &h.OrderNumber, &h.Timestamp); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
