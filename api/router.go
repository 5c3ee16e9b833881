package api

import (
	"net/http"

	"github.com/Domenick1991/skylink/config"
	"github.com/Domenick1991/skylink/internal/service/catalog"
	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Dependencies struct {
	Orders  orders.UseCase
	Catalog catalog.UseCase
	Auth    config.AuthConfig
	Limits  config.RateLimitConfig
	Log     logrus.FieldLogger
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(deps.Log), RequestLogger(deps.Log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authed := api.Group("", Auth(deps.Auth.JWTSecret))
	NewOrderHandler(deps.Orders).Register(authed.Group("/orders"))
	NewUserHandler(deps.Orders).Register(authed.Group("/users"))

	checkIn := api.Group("/check-in", RateLimit(deps.Limits.RequestsPerSecond, deps.Limits.Burst, deps.Log))
	NewCheckInHandler(deps.Orders).Register(checkIn)

	NewCatalogHandler(deps.Catalog).Register(api.Group("/flights"), api.Group("/services"))

	return router
}
