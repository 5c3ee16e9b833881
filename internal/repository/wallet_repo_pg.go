package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type WalletRepository interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	// Debit fails with domain.ErrWalletInsufficient and changes nothing when
	// the balance does not cover amount.
	Debit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.WalletTransaction, error)
	Credit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.WalletTransaction, error)
	ListTransactions(ctx context.Context, userID int64, limit int) ([]domain.WalletTransaction, error)
	CreateUser(ctx context.Context, u *domain.User) error
}

type PGWalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) WalletRepository {
	return &PGWalletRepository{db: db}
}

func (r *PGWalletRepository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `SELECT id, email, first_name, last_name, wallet_balance, created_at FROM users WHERE id=$1`, userID).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.WalletBalance, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGWalletRepository) Debit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.WalletTransaction, error) {
	return r.apply(ctx, userID, domain.TransactionDebit, amount, description,
		`UPDATE users SET wallet_balance = wallet_balance - $2 WHERE id=$1 AND wallet_balance >= $2 RETURNING wallet_balance`)
}

func (r *PGWalletRepository) Credit(ctx context.Context, userID int64, amount decimal.Decimal, description string) (*domain.WalletTransaction, error) {
	return r.apply(ctx, userID, domain.TransactionCredit, amount, description,
		`UPDATE users SET wallet_balance = wallet_balance + $2 WHERE id=$1 RETURNING wallet_balance`)
}

func (r *PGWalletRepository) apply(ctx context.Context, userID int64, kind domain.TransactionType, amount decimal.Decimal, description, balanceUpdate string) (*domain.WalletTransaction, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	t := domain.WalletTransaction{UserID: userID, Type: kind, Amount: amount, Description: description}
	err = tx.QueryRow(ctx, balanceUpdate, userID, amount).Scan(&t.BalanceAfter)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := r.GetUser(ctx, userID); err != nil {
			return nil, err
		}
		return nil, domain.ErrWalletInsufficient
	}
	if err != nil {
		return nil, fmt.Errorf("%s wallet of user %d: %w", kind, userID, err)
	}

	if err := tx.QueryRow(ctx, `INSERT INTO wallet_transactions (user_id, type, amount, balance_after, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`, userID, kind, amount, t.BalanceAfter, description).
		Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert wallet transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGWalletRepository) ListTransactions(ctx context.Context, userID int64, limit int) ([]domain.WalletTransaction, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, type, amount, balance_after, description, created_at
		FROM wallet_transactions WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]domain.WalletTransaction, 0)
	for rows.Next() {
		var t domain.WalletTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.BalanceAfter, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// CreateUser is a no-op for an email that already exists; u.ID is filled either way.
func (r *PGWalletRepository) CreateUser(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (email, first_name, last_name, wallet_balance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, wallet_balance, created_at`, u.Email, u.FirstName, u.LastName, u.WalletBalance).
		Scan(&u.ID, &u.WalletBalance, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", u.Email, err)
	}
	return nil
}

var _ WalletRepository = (*PGWalletRepository)(nil)
