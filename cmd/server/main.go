package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kpalmer/balancecal-backend/internal/adapter/repository/postgres"
	"github.com/kpalmer/balancecal-backend/internal/adapter/rest"
	"github.com/kpalmer/balancecal-backend/internal/config"
	"github.com/kpalmer/balancecal-backend/internal/usecase/seeder"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	db, err := postgres.NewDB(cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	accountRepo := postgres.NewAccountRepository(db)
	billRepo := postgres.NewBillRepository(db)
	paycheckRepo := postgres.NewPaycheckRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	priorityRepo := postgres.NewPriorityRepository(db)

	ctx := context.Background()
	categorySeeder := seeder.NewCategorySeeder(categoryRepo)
	if err := categorySeeder.Seed(ctx); err != nil {
		logger.Fatalf("Failed to seed default categories: %v", err)
	}
	logger.Info("Default categories seeded")

	server := rest.NewServer(
		logger,
		cfg.APIToken,
		accountRepo,
		billRepo,
		paycheckRepo,
		expenseRepo,
		categoryRepo,
		priorityRepo,
	)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(logger *logrus.Logger, server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Infof("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
	logger.Info("HTTP server stopped")
}
