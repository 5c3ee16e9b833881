package orders

import (
	"context"

	"github.com/Domenick1991/skylink/internal/domain"
)

const walletHistoryLimit = 20

type Wallet struct {
	User         *domain.User
	Transactions []domain.WalletTransaction
}

func (s *Service) GetOrder(ctx context.Context, orderNumber string, userID int64) (*domain.Order, error) {
	return s.loadOwned(ctx, orderNumber, userID)
}

func (s *Service) ListUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) GetWallet(ctx context.Context, userID int64) (*Wallet, error) {
	user, err := s.wallets.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.wallets.ListTransactions(ctx, userID, walletHistoryLimit)
	if err != nil {
		return nil, err
	}
	return &Wallet{User: user, Transactions: txs}, nil
}

func (s *Service) ListBookingHistory(ctx context.Context, userID int64) ([]domain.BookingHistory, error) {
	return s.orders.ListHistoryByUser(ctx, userID)
}
