package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/config"
	"github.com/opsdeck/backoffice/internal/logger"
)

const groupID = "audit-log-consumer-group"

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Debug)
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := cfg.KafkaBrokers
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	log.Info("starting audit consumer",
		zap.Strings("brokers", brokers),
		zap.String("topic", cfg.AuditTopic))

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          cfg.AuditTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received, stopping consumer")
			return
		default:
			m, err := r.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn("failed to read message", zap.Error(err))
				time.Sleep(5 * time.Second)
				continue
			}

			log.Info("audit event",
				zap.String("key", string(m.Key)),
				zap.ByteString("value", m.Value),
				zap.Int64("offset", m.Offset))
		}
	}
}
