package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceFilter struct {
	Phase      domain.ServicePhase
	ActiveOnly bool
}

type ServiceRepository interface {
	List(ctx context.Context, filter ServiceFilter) ([]domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error)
	ReserveUnits(ctx context.Context, id int64, quantity int) error
	ReleaseUnits(ctx context.Context, id int64, quantity int) error
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, s *domain.Service) error
}

type PGServiceRepository struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) ServiceRepository {
	return &PGServiceRepository{db: db}
}

const serviceColumns = `id, name, description, category, phase, price, inventory, tag, is_active`

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.Phase, &s.Price, &s.Inventory, &s.Tag, &s.IsActive); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGServiceRepository) List(ctx context.Context, filter ServiceFilter) ([]domain.Service, error) {
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services
		WHERE ($1 = '' OR phase = $1) AND (NOT $2 OR is_active)
		ORDER BY id`, string(filter.Phase), filter.ActiveOnly)
	if err != nil {
		return nil, err
	}
	return collectServices(rows)
}

func (r *PGServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	s, err := scanService(r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrServiceNotFound
	}
	return s, err
}

// GetByIDs returns the services that exist; missing ids are simply absent.
func (r *PGServiceRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	return collectServices(rows)
}

func collectServices(rows pgx.Rows) ([]domain.Service, error) {
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *s)
	}
	return services, rows.Err()
}

func (r *PGServiceRepository) ReserveUnits(ctx context.Context, id int64, quantity int) error {
	res, err := r.db.Exec(ctx, `UPDATE services SET inventory = inventory - $2 WHERE id=$1 AND is_active AND inventory >= $2`, id, quantity)
	if err != nil {
		return err
	}
	if res.RowsAffected() > 0 {
		return nil
	}

	s, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.IsActive {
		return domain.ErrServiceUnavailable
	}
	return domain.ErrInsufficientInventory
}

func (r *PGServiceRepository) ReleaseUnits(ctx context.Context, id int64, quantity int) error {
	_, err := r.db.Exec(ctx, `UPDATE services SET inventory = inventory + $2 WHERE id=$1`, id, quantity)
	return err
}

func (r *PGServiceRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM services`).Scan(&n)
	return n, err
}

func (r *PGServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	err := r.db.QueryRow(ctx, `INSERT INTO services (name, description, category, phase, price, inventory, tag, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, s.Name, s.Description, s.Category, s.Phase, s.Price, s.Inventory, s.Tag, s.IsActive).
		Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert service %s: %w", s.Name, err)
	}
	return nil
}

var _ ServiceRepository = (*PGServiceRepository)(nil)
