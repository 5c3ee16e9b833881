package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            int64
	Email         string
	FirstName     string
	LastName      string
	WalletBalance decimal.Decimal
	CreatedAt     time.Time
}

type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// WalletTransaction is an append-only fact applied to a user's balance.
type WalletTransaction struct {
	ID           int64
	UserID       int64
	Type         TransactionType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Description  string
	CreatedAt    time.Time
}

// BookingHistory links a user, a service and an order at selection time.
type BookingHistory struct {
	ID          int64
	UserID      int64
	ServiceID   int64
	ServiceName string
	OrderID     int64
	OrderNumber string
	Timestamp   time.Time
}
