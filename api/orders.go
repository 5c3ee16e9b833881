package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service orders.UseCase
}

// Client-sent totals are not part of the request; prices always come from the catalogue.
type createOrderRequest struct {
	FlightID         *int64                    `json:"flightId"`
	PassengerInfo    passengerList             `json:"passengerInfo" binding:"required"`
	SelectedServices []orders.ServiceSelection `json:"selectedServices"`
	SeatID           *int64                    `json:"seatId"`
	SeatIDs          []int64                   `json:"seatIds"`
}

func (r createOrderRequest) input(userID int64) orders.CreateOrderInput {
	seats := r.SeatIDs
	if len(seats) == 0 && r.SeatID != nil {
		seats = []int64{*r.SeatID}
	}
	return orders.CreateOrderInput{
		UserID:     userID,
		FlightID:   r.FlightID,
		Passengers: r.PassengerInfo,
		Services:   r.SelectedServices,
		SeatIDs:    seats,
	}
}

type completePaymentRequest struct {
	PaymentMethod  string         `json:"paymentMethod"`
	PaymentDetails map[string]any `json:"paymentDetails"`
}

type addServicesRequest struct {
	Services      []orders.ServiceSelection `json:"services" binding:"required,min=1"`
	PaymentMethod string                    `json:"paymentMethod"`
}

type addServicesResponse struct {
	Order         orderResponse         `json:"order"`
	AddedServices []serviceLineResponse `json:"addedServices"`
	Payment       paymentResponse       `json:"payment"`
}

type removeServiceRequest struct {
	ServiceID int64 `json:"serviceId" binding:"required,gt=0"`
}

type removeServiceResponse struct {
	Order  orderResponse  `json:"order"`
	Refund refundResponse `json:"refund"`
}

func NewOrderHandler(service orders.UseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.POST("/create-draft", h.createDraft)
	router.GET("/:orderNumber", h.get)
	router.POST("/:orderNumber/complete-payment", h.completePayment)
	router.POST("/:orderNumber/add-services", h.addServices)
	router.POST("/:orderNumber/remove-service", h.removeService)
	router.DELETE("/:id", h.cancel)
}

func (h *OrderHandler) create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req.input(currentUser(c)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(order))
}

func (h *OrderHandler) createDraft(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.service.CreateDraft(c.Request.Context(), req.input(currentUser(c)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(order))
}

func (h *OrderHandler) get(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("orderNumber"), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *OrderHandler) completePayment(c *gin.Context) {
	var req completePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.service.CompletePayment(c.Request.Context(), orders.CompletePaymentInput{
		OrderNumber:    c.Param("orderNumber"),
		UserID:         currentUser(c),
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *OrderHandler) addServices(c *gin.Context) {
	var req addServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.AddServices(c.Request.Context(), orders.AddServicesInput{
		OrderNumber:   c.Param("orderNumber"),
		UserID:        currentUser(c),
		Services:      req.Services,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addServicesResponse{
		Order:         newOrderResponse(res.Order),
		AddedServices: newServiceLines(res.AddedServices),
		Payment:       newPaymentResponse(res.Payment),
	})
}

func (h *OrderHandler) removeService(c *gin.Context) {
	var req removeServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.RemoveService(c.Request.Context(), orders.RemoveServiceInput{
		OrderNumber: c.Param("orderNumber"),
		UserID:      currentUser(c),
		ServiceID:   req.ServiceID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, removeServiceResponse{
		Order: newOrderResponse(res.Order),
		Refund: refundResponse{
			ServiceName:  res.Refund.ServiceName,
			ServicePrice: money(res.Refund.ServicePrice),
			Amount:       money(res.Refund.Amount),
			TaxRefund:    money(res.Refund.TaxRefund),
			TotalRefund:  money(res.Refund.TotalRefund),
			RefundMethod: res.Refund.RefundMethod,
		},
	})
}

// cancel is addressed by the numeric order id, not the order number.
func (h *OrderHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id"})
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}
