package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skylink/api"
	"github.com/Domenick1991/skylink/config"
	"github.com/Domenick1991/skylink/internal/bootstrap"
	"github.com/Domenick1991/skylink/internal/cache"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/Domenick1991/skylink/internal/logging"
	"github.com/Domenick1991/skylink/internal/repository"
	"github.com/Domenick1991/skylink/internal/seed"
	"github.com/Domenick1991/skylink/internal/service/catalog"
	"github.com/Domenick1991/skylink/internal/service/inventory"
	"github.com/Domenick1991/skylink/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logging.New(config.LogConfig{}).Fatalf("load config: %v", err)
	}
	log := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	flightRepo := repository.NewFlightRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	walletRepo := repository.NewWalletRepository(pool)

	if cfg.Seed.Enabled {
		balance, err := decimal.NewFromString(cfg.Seed.WalletBalance)
		if err != nil {
			log.Fatalf("seed wallet balance: %v", err)
		}
		if err := seed.New(flightRepo, seatRepo, serviceRepo, walletRepo, log).Run(ctx, balance); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	ledgerOpts := []inventory.LedgerOption{inventory.WithLogger(log)}
	orderOpts := []orders.Option{orders.WithLogger(log)}
	var catalogCache catalog.Cache

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Orders.CatalogCacheTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.WithError(err).Warn("redis unreachable, catalog cache and order locks will fail until it recovers")
		}
		catalogCache = redisCache
		ledgerOpts = append(ledgerOpts, inventory.WithServiceCache(redisCache))
		orderOpts = append(orderOpts, orders.WithLocker(redisCache, cfg.Orders.LockTTL()))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.WithError(err).Warn("kafka unreachable, order events will be dropped")
		}
		orderOpts = append(orderOpts,
			orders.WithProducer(producer, cfg.Kafka.OrderTopic),
			orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	ledger := inventory.NewLedger(seatRepo, serviceRepo, ledgerOpts...)
	orderService := orders.NewService(orderRepo, flightRepo, serviceRepo, walletRepo, ledger, orderOpts...)
	catalogService := catalog.NewService(flightRepo, seatRepo, serviceRepo, catalogCache, log)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Dependencies{
		Orders:  orderService,
		Catalog: catalogService,
		Auth:    cfg.Auth,
		Limits:  cfg.RateLimit,
		Log:     log,
	})

	if err := bootstrap.Run(ctx, cfg, router, pool, log); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
