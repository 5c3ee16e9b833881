package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skylink/config"
	"github.com/Domenick1991/skylink/internal/kafka"
	"github.com/Domenick1991/skylink/internal/logging"
	"github.com/Domenick1991/skylink/internal/receipt"
	"github.com/Domenick1991/skylink/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
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

	sender := receipt.NewSender(repository.NewWalletRepository(pool), receipt.LogDeliverer{Log: log}, log)

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.OrderTopic
	}
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic, log)
	defer consumer.Close()

	log.WithFields(logrus.Fields{"topic": topic, "group_id": cfg.Kafka.GroupID}).Info("receipt worker started")

	if err := consumer.Consume(ctx, sender.Send); err != nil {
		log.Fatalf("consume: %v", err)
	}
	log.Info("receipt worker stopped")
}
