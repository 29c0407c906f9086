package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/logger"
	"github.com/dev-7msolution/restaurante-mobile/server"
	"github.com/dev-7msolution/restaurante-mobile/server/database"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		logger.Log.Fatal("failed to open database", zap.Error(err))
	}
	if err := database.Seed(context.Background(), db, cfg.TestCreds); err != nil {
		logger.Log.Fatal("failed to seed database", zap.Error(err))
	}

	router := server.NewRouter(cfg, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("restaurante API listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("shutdown error", zap.Error(err))
	}
	logger.Info("server shutdown complete")
}
