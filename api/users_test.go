package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_wallet(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewUserHandler(mockService)

	c, w := testContext("GET", "/api/users/7/wallet", "")
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	wallet := &orders.Wallet{
		User: &domain.User{ID: 7, Email: "ada@example.com", WalletBalance: decimal.RequireFromString("972")},
		Transactions: []domain.WalletTransaction{{
			ID:           1,
			Type:         domain.TransactionDebit,
			Amount:       decimal.RequireFromString("28"),
			BalanceAfter: decimal.RequireFromString("972"),
			Description:  "Payment via online_booking for additional services on order SL123456",
			CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		}},
	}
	mockService.On("GetWallet", c.Request.Context(), int64(7)).Return(wallet, nil)

	handler.wallet(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response walletResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "972.00", response.Balance)
	require.Len(t, response.Transactions, 1)
	assert.Equal(t, "debit", response.Transactions[0].Type)
	assert.Equal(t, "28.00", response.Transactions[0].Amount)
}

func TestUserHandler_OtherUserForbidden(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewUserHandler(mockService)

	c, w := testContext("GET", "/api/users/8/orders", "")
	c.Params = gin.Params{{Key: "id", Value: "8"}}

	handler.orders(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "ListUserOrders")
}

func TestUserHandler_orders(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewUserHandler(mockService)

	c, w := testContext("GET", "/api/users/7/orders", "")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	mockService.On("ListUserOrders", c.Request.Context(), int64(7)).Return([]domain.Order{*sampleOrder()}, nil)

	handler.orders(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []orderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "669.76", response[0].Total)
}

func TestUserHandler_bookingHistory(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewUserHandler(mockService)

	c, w := testContext("GET", "/api/users/7/booking-history", "")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	mockService.On("ListBookingHistory", c.Request.Context(), int64(7)).Return([]domain.BookingHistory{}, nil)

	handler.bookingHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
