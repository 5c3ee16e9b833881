package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/skylink/internal/domain"
	"github.com/Domenick1991/skylink/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service catalog.UseCase
}

func NewCatalogHandler(service catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(flights, services *gin.RouterGroup) {
	flights.GET("", h.listFlights)
	flights.GET("/:id", h.getFlight)
	flights.GET("/:id/seats", h.flightSeats)

	services.GET("", h.listServices)
	services.GET("/:id", h.getService)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) listFlights(c *gin.Context) {
	flights, err := h.service.ListFlights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]flightResponse, 0, len(flights))
	for i := range flights {
		out = append(out, newFlightResponse(&flights[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) getFlight(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetFlight(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlightResponse(flight))
}

func (h *CatalogHandler) flightSeats(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	seats, err := h.service.ListFlightSeats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]seatResponse, 0, len(seats))
	for i := range seats {
		out = append(out, newSeatResponse(&seats[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context(), domain.ServicePhase(c.Query("phase")))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]serviceResponse, 0, len(services))
	for i := range services {
		out = append(out, newServiceResponse(&services[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) getService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	service, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newServiceResponse(service))
}
