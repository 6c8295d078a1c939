package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venuehub/core/cache"
	"venuehub/core/config"
	"venuehub/core/constants"
	"venuehub/core/database"
	"venuehub/core/logger"
	"venuehub/core/middleware"
	"venuehub/core/realtime"
	"venuehub/modules/calendar"
	calendarWorker "venuehub/modules/calendar/worker"
	"venuehub/modules/notification"
	"venuehub/modules/presence"
	"venuehub/modules/venue"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the API server, the realtime bus and the background workers,
// then blocks until a shutdown signal arrives.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	redisClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer redisClient.Close()

	bus := realtime.NewRedisBus(redisClient)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	mw := middleware.NewMiddleware()

	venues := venue.Init(e, db, cache.NewRedisCache(redisClient), mw)
	notifications := notification.Init(e, db, mw)
	webhooks := calendar.Init(e, db, mw, venues, notifications)
	presence.Init(e, bus, mw)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	asynqServer := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	mux := asynq.NewServeMux()
	calendarWorker.NewWebhookRenewalWorker(webhooks).Register(mux)

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(calendarWorker.TaskWebhookRenew, nil)); err != nil {
		return fmt.Errorf("register renewal schedule: %w", err)
	}

	errCh := make(chan error, 3)
	go func() {
		if err := asynqServer.Run(mux); err != nil {
			errCh <- fmt.Errorf("asynq server: %w", err)
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			errCh <- fmt.Errorf("asynq scheduler: %w", err)
		}
	}()
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Server:Run:Shutdown", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownPeriod)
	defer cancel()

	scheduler.Shutdown()
	asynqServer.Shutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	// Give in-flight handlers a moment to flush logs.
	time.Sleep(100 * time.Millisecond)
	logger.Sync()
	return nil
}
