package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/opsdeck/backoffice/internal/config"
	"github.com/opsdeck/backoffice/internal/console"
	"github.com/opsdeck/backoffice/internal/db"
	"github.com/opsdeck/backoffice/internal/kafka"
	"github.com/opsdeck/backoffice/internal/logger"
	"github.com/opsdeck/backoffice/internal/privacy"
	"github.com/opsdeck/backoffice/internal/records"
	"github.com/opsdeck/backoffice/internal/repository/postgresql"
	"github.com/opsdeck/backoffice/internal/server"
	"github.com/opsdeck/backoffice/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Debug)
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()

	orderRepo := postgresql.NewOrderRepo(database)
	returnRepo := postgresql.NewReturnRepo(database)
	exchangeRepo := postgresql.NewExchangeRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	vendorRepo := postgresql.NewVendorRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	operatorRepo := postgresql.NewOperatorRepo(database)

	stg := storage.NewStorage(orderRepo, returnRepo, exchangeRepo, userRepo, vendorRepo, historyRepo, log)

	store := records.NewStore(log)
	policy := privacy.NewPolicy()
	gate := privacy.NewGate(policy, log)

	c := console.New(store, stg, gate, cfg.PollInterval, log)

	var producer kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewWriterProducer(cfg.KafkaBrokers, log)
	} else {
		producer = kafka.NewConsoleProducer(log)
	}
	auditManager := server.NewAuditManager(producer, cfg.AuditTopic, 2, 5, 500*time.Millisecond, log)

	srv := server.New(c, operatorRepo, auditManager, log)

	go func() {
		if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown failed", zap.Error(err))
	}

	log.Info("server gracefully stopped")
}
