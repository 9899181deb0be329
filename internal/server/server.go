// Package server boots the application: configuration, logging sinks,
// storage backends, background workers, and the HTTP listener.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shashiranjanraj/supplyco/app/jobs"
	"github.com/shashiranjanraj/supplyco/app/models"
	"github.com/shashiranjanraj/supplyco/app/routes"
	"github.com/shashiranjanraj/supplyco/app/services"
	"github.com/shashiranjanraj/supplyco/config"
	"github.com/shashiranjanraj/supplyco/pkg/cache"
	"github.com/shashiranjanraj/supplyco/pkg/database"
	supplygrpc "github.com/shashiranjanraj/supplyco/pkg/grpc"
	"github.com/shashiranjanraj/supplyco/pkg/logger"
	"github.com/shashiranjanraj/supplyco/pkg/notification"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
	"github.com/shashiranjanraj/supplyco/pkg/queue"
	"github.com/shashiranjanraj/supplyco/pkg/schedule"
	"github.com/shashiranjanraj/supplyco/pkg/storage"
	"github.com/shashiranjanraj/supplyco/pkg/ws"
)

// Boot initialises every subsystem except the HTTP listener. It returns the
// websocket hub so callers can wire the live feed routes.
func Boot() (*ws.Hub, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if uri := config.MongoLogURI(); uri != "" {
		h, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo log sink disabled", "err", err)
		} else {
			stdout := slog.NewJSONHandler(os.Stdout, nil)
			logger.SetHandler(logger.NewMultiHandler(stdout, h))
		}
	}

	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache disabled", "err", err)
	}
	storage.Connect()

	notification.UseDB(database.DB)
	queue.UseDB(database.DB)
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	hub := ws.NewHub()
	go hub.Run()
	jobs.Register(hub)
	registerSchedules()

	return hub, nil
}

// registerSchedules declares recurring background work.
func registerSchedules() {
	analytics := services.NewAnalyticsService()

	// Keep shop dashboards warm so the first request after a quiet period
	// does not pay for two aggregate queries.
	schedule.Every(30).Minutes().Name("warm-shop-analytics").WithoutOverlapping().Run(func() {
		var shopIDs []uint
		err := orm.DB().Gorm().Model(&models.Shop{}).Pluck("id", &shopIDs).Error
		if err != nil {
			logger.Warn("analytics warmup: list shops", "err", err)
			return
		}
		for _, id := range shopIDs {
			if _, err := analytics.ForShop(id); err != nil {
				logger.Warn("analytics warmup", "shop", id, "err", err)
			}
		}
	})

	schedule.Daily().Name("report-failed-jobs").Run(func() {
		if n := len(queue.FailedJobs()); n > 0 {
			logger.Warn("failed jobs pending", "count", n)
		}
	})
}

// Start boots the application and serves HTTP until SIGINT or SIGTERM.
func Start() error {
	hub, err := Boot()
	if err != nil {
		return err
	}
	return Serve(hub)
}

// Serve runs workers, the scheduler, and the HTTP listener on an already
// booted application.
func Serve(hub *ws.Hub) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workers, err := strconv.Atoi(config.QueueWorkers())
	if err != nil || workers < 1 {
		workers = 4
	}
	queue.StartWorkers(ctx, workers)
	schedule.Start(ctx)

	if port := config.GRPCPort(); port != "" {
		srv, _, err := supplygrpc.Start(port)
		if err != nil {
			return fmt.Errorf("start grpc: %w", err)
		}
		defer supplygrpc.Stop(srv)
	}

	r := routes.Build(hub)
	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpSrv.Addr, "env", config.AppEnv())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}
