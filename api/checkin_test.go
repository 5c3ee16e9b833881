package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInHandler_eligibility(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewCheckInHandler(mockService)

	c, w := testContext("POST", "/api/check-in/eligibility", `{"orderNumber":"SL123456","lastName":"lovelace"}`)

	eligibility := &orders.Eligibility{
		Eligible: true,
		Message:  "Eligible for check-in",
		Order:    sampleOrder(),
		Flight:   &domain.Flight{ID: 1, FlightNumber: "SL1234", Price: decimal.RequireFromString("299")},
	}
	mockService.On("CheckEligibility", c.Request.Context(), "SL123456", "lovelace").Return(eligibility, nil)

	handler.eligibility(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response eligibilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Eligible)
	require.NotNil(t, response.Flight)
	assert.Equal(t, "299.00", response.Flight.Price)
	require.NotNil(t, response.Booking)
	assert.Equal(t, "SL123456", response.Booking.OrderNumber)
}

func TestCheckInHandler_eligibility_NotEligible(t *testing.T) {
	tests := []struct {
		name   string
		kind   error
		msg    string
		status int
	}{
		{"not found", domain.ErrNotFound, "Booking not found", http.StatusNotFound},
		{"wrong name", domain.ErrAccessDenied, "Passenger name does not match", http.StatusForbidden},
		{"checked in", domain.ErrInvalidState, "Already checked in for this flight", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockOrderUseCase{}
			handler := NewCheckInHandler(mockService)

			c, w := testContext("POST", "/api/check-in/eligibility", `{"orderNumber":"SL123456","lastName":"Smith"}`)
			mockService.On("CheckEligibility", c.Request.Context(), "SL123456", "Smith").
				Return(&orders.Eligibility{Message: tt.msg, Reason: domain.NewError(tt.kind, tt.msg)}, nil)

			handler.eligibility(c)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"eligible":false,"message":"`+tt.msg+`"}`, w.Body.String())
		})
	}
}

func TestCheckInHandler_eligibility_MissingLastName(t *testing.T) {
	handler := NewCheckInHandler(&MockOrderUseCase{})

	c, w := testContext("POST", "/api/check-in/eligibility", `{"orderNumber":"SL123456"}`)

	handler.eligibility(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckInHandler_complete_WithUpgrade(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewCheckInHandler(mockService)

	c, w := testContext("POST", "/api/check-in/complete", `{"orderNumber":"SL123456","lastName":"Lovelace","seatId":12}`)

	seatID := int64(12)
	order := sampleOrder()
	order.IsCheckedIn = true
	result := &orders.CheckInResult{
		Order:   order,
		Message: "Check-in completed with seat upgrade. Charged $50.40 total.",
		SeatUpgrade: &orders.SeatUpgrade{
			SeatID:     12,
			SeatNumber: "12A",
			SeatType:   domain.SeatTypeEconomy,
			SeatClass:  domain.SeatClassWindow,
			Price:      decimal.RequireFromString("45"),
		},
		PaymentProcessed: &orders.PaymentDetails{
			Method: "online_booking",
			Amount: decimal.RequireFromString("45"),
			Taxes:  decimal.RequireFromString("5.4"),
			Total:  decimal.RequireFromString("50.4"),
		},
	}
	mockService.On("CheckIn", c.Request.Context(), orders.CheckInInput{OrderNumber: "SL123456", LastName: "Lovelace", SeatID: &seatID}).
		Return(result, nil)

	handler.complete(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response checkInResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Check-in completed with seat upgrade. Charged $50.40 total.", response.Message)
	require.NotNil(t, response.SeatUpgrade)
	assert.Equal(t, "12A", response.SeatUpgrade.SeatNumber)
	require.NotNil(t, response.PaymentProcessed)
	assert.Equal(t, "50.40", response.PaymentProcessed.Total)
	assert.True(t, response.Booking.IsCheckedIn)
}

func TestCheckInHandler_complete_SeatTaken(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewCheckInHandler(mockService)

	c, w := testContext("POST", "/api/check-in/complete", `{"orderNumber":"SL123456","lastName":"Lovelace","seatId":12}`)
	mockService.On("CheckIn", c.Request.Context(), orders.CheckInInput{OrderNumber: "SL123456", LastName: "Lovelace", SeatID: ptr(int64(12))}).
		Return(nil, domain.ErrSeatUnavailable)

	handler.complete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func ptr[T any](v T) *T {
	return &v
}
