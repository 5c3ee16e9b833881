package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service orders.UseCase
}

func NewUserHandler(service orders.UseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id/orders", h.orders)
	router.GET("/:id/wallet", h.wallet)
	router.GET("/:id/booking-history", h.bookingHistory)
}

// self resolves the path user and rejects anyone but the token owner.
func self(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return 0, false
	}
	if id != currentUser(c) {
		respondError(c, domain.ErrOrderAccessDenied)
		return 0, false
	}
	return id, true
}

func (h *UserHandler) orders(c *gin.Context) {
	userID, ok := self(c)
	if !ok {
		return
	}
	list, err := h.service.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderList(list))
}

func (h *UserHandler) wallet(c *gin.Context) {
	userID, ok := self(c)
	if !ok {
		return
	}
	w, err := h.service.GetWallet(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWalletResponse(w))
}

func (h *UserHandler) bookingHistory(c *gin.Context) {
	userID, ok := self(c)
	if !ok {
		return
	}
	entries, err := h.service.ListBookingHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]historyResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyResponse{
			ID:          e.ID,
			ServiceID:   e.ServiceID,
			ServiceName: e.ServiceName,
			OrderID:     e.OrderID,
			OrderNumber: e.OrderNumber,
			Timestamp:   timestamp(e.Timestamp),
		})
	}
	c.JSON(http.StatusOK, out)
}
