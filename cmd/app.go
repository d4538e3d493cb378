package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mealshop/api"
	"mealshop/config"
	"mealshop/infrastructure/persistence/mysql"
	"mealshop/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the assembled application.
type App struct {
	config       *config.Config
	router       *api.Router
	server       *http.Server
	db           *gorm.DB
	outboxWorker *mysql.OutboxWorker
}

// Run starts the outbox worker and the HTTP server, then blocks until
// SIGINT or SIGTERM. Shutdown drains in-flight requests within the
// configured timeout before closing the database.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.outboxWorker != nil {
		go func() {
			if err := a.outboxWorker.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Outbox worker stopped", zap.Error(err))
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Error("Database close failed", zap.Error(err))
			}
		}
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
	return nil
}

// Engine exposes the gin engine for tests.
func (a *App) Engine() http.Handler {
	return a.router.GetEngine()
}
