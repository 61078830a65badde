package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/employee-salary/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-salary/internal/core/company"
	"github.com/ogurasousui/employee-salary/internal/platform/config"
	pg "github.com/ogurasousui/employee-salary/internal/platform/db/postgres"
	"github.com/ogurasousui/employee-salary/internal/platform/logging"
	"github.com/ogurasousui/employee-salary/internal/platform/server"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var (
		store company.Store
		tx    company.TransactionManager
	)
	if cfg.Database.Enabled() {
		dbPool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("failed to initialize database pool", zap.Error(err))
		}
		defer dbPool.Close()

		store = postgres.NewEmployeeRepository(dbPool)
		tx = pg.NewTransactionManager(dbPool, logger)
	} else {
		logger.Info("database is not configured; running in memory")
	}

	companySvc := company.NewService(cfg.Company.Name, store, tx, logger)
	if err := companySvc.Restore(ctx); err != nil {
		logger.Fatal("failed to restore company state", zap.Error(err))
	}

	grpcServer := server.New(cfg.Server.ListenAddr, companySvc, logger)
	if err := grpcServer.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}
