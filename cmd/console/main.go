package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"adminhub/console/internal/api"
	"adminhub/console/internal/cache"
	"adminhub/console/internal/config"
	"adminhub/console/internal/handlers"
	"adminhub/console/internal/jobs"
	"adminhub/console/internal/log"
	"adminhub/console/internal/server"
	"adminhub/console/internal/service"
	"adminhub/console/internal/session"
	"adminhub/console/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	sessionStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init session store")
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, func(ctx context.Context) string {
		token, _ := sessionStore.Load(ctx)
		return token
	}, logger)

	authService := service.NewAuthService(client, sessionStore, logger)
	controller := session.NewController(authService, sessionStore, logger)

	// Resolve the persisted session before serving; a token that cannot be
	// verified against the backend is discarded here.
	initCtx, cancelInit := context.WithTimeout(ctx, 15*time.Second)
	controller.Initialize(initCtx)
	cancelInit()

	handlerSet := handlers.NewHandlerSet(logger, cfg, controller, authService)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	var scheduler *jobs.Scheduler
	if cfg.Refresh.Enabled {
		scheduler = jobs.NewScheduler(controller, cfg.Refresh.Spec, logger)
		if err := scheduler.Start(); err != nil {
			logger.Error().Err(err).Msg("scheduler start failed")
		}
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("console gateway failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler)
}

func newSessionStore(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (store.Store, error) {
	if cfg.Session.Backend == "redis" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(redisClient, logger), nil
	}
	return store.NewFileStore(cfg.Session.Dir, logger)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	logger.Info().Msg("console gateway exited cleanly")
}
