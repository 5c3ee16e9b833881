package api

import (
	"net/http"

	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	service orders.UseCase
}

type eligibilityRequest struct {
	OrderNumber string `json:"orderNumber" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
}

type eligibilityResponse struct {
	Eligible bool            `json:"eligible"`
	Message  string          `json:"message"`
	Booking  *orderResponse  `json:"booking,omitempty"`
	Flight   *flightResponse `json:"flight,omitempty"`
}

type checkInRequest struct {
	OrderNumber   string `json:"orderNumber" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	SeatID        *int64 `json:"seatId"`
	PaymentMethod string `json:"paymentMethod"`
}

type checkInResponse struct {
	Message          string               `json:"message"`
	Booking          orderResponse        `json:"booking"`
	SeatUpgrade      *seatUpgradeResponse `json:"seatUpgrade,omitempty"`
	PaymentProcessed *paymentResponse     `json:"paymentProcessed,omitempty"`
}

func NewCheckInHandler(service orders.UseCase) *CheckInHandler {
	return &CheckInHandler{service: service}
}

func (h *CheckInHandler) Register(router *gin.RouterGroup) {
	router.POST("/eligibility", h.eligibility)
	router.POST("/complete", h.complete)
}

func (h *CheckInHandler) eligibility(c *gin.Context) {
	var req eligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	e, err := h.service.CheckEligibility(c.Request.Context(), req.OrderNumber, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}
	if !e.Eligible {
		c.JSON(statusFor(e.Reason), eligibilityResponse{Message: e.Message})
		return
	}

	booking := newOrderResponse(e.Order)
	flight := newFlightResponse(e.Flight)
	c.JSON(http.StatusOK, eligibilityResponse{Eligible: true, Message: e.Message, Booking: &booking, Flight: &flight})
}

func (h *CheckInHandler) complete(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.CheckIn(c.Request.Context(), orders.CheckInInput{
		OrderNumber:   req.OrderNumber,
		LastName:      req.LastName,
		SeatID:        req.SeatID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := checkInResponse{Message: res.Message, Booking: newOrderResponse(res.Order)}
	if u := res.SeatUpgrade; u != nil {
		resp.SeatUpgrade = &seatUpgradeResponse{
			SeatID:     u.SeatID,
			SeatNumber: u.SeatNumber,
			SeatType:   string(u.SeatType),
			SeatClass:  string(u.SeatClass),
			Price:      money(u.Price),
		}
	}
	if p := res.PaymentProcessed; p != nil {
		payment := newPaymentResponse(*p)
		resp.PaymentProcessed = &payment
	}
	c.JSON(http.StatusOK, resp)
}

