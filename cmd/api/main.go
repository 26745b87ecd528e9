package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/irpf-calculator/internal/config"
	"github.com/Dan9191/irpf-calculator/internal/handler"
	"github.com/Dan9191/irpf-calculator/internal/integrations/ecb"
	"github.com/Dan9191/irpf-calculator/internal/repository"
	"github.com/Dan9191/irpf-calculator/internal/scheduler"
	"github.com/Dan9191/irpf-calculator/internal/service"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Rate snapshots are optional
	var store service.RateStore
	if cfg.DBConn != "" {
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}

		repo := repository.NewRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
		store = repo
	}

	// Initialize layers
	rates := service.NewRateCache(ecb.NewECBClient(cfg, logger), store, logger)
	if err := rates.Load(ctx); err != nil {
		logger.Warnf("Failed to load stored rates: %v", err)
	}
	if err := rates.Refresh(ctx); err != nil {
		logger.Warnf("Exchange rates unavailable, conversions disabled until next refresh: %v", err)
	}

	sched, err := scheduler.NewScheduler(cfg.RatesSchedule, rates, cfg.HTTPTimeout, logger)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}

	svc := service.NewService(rates, logger)
	h := handler.NewHandler(svc, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(gctx)
	})
	g.Go(func() error {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
