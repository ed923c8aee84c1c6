package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpadapter "taskorganizer/internal/adapter/http"
	"taskorganizer/internal/adapter/http/handlers"
	httpmiddleware "taskorganizer/internal/adapter/http/middleware"
	"taskorganizer/internal/bootstrap"
	"taskorganizer/internal/config"
	"taskorganizer/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: translator.SupportedLanguages,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close stores", zap.Error(err))
		}
	}()

	if cfg.ReviewEnabled {
		go func() {
			if err := app.Scheduler().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("review scheduler stopped", zap.Error(err))
			}
		}()
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))

	var remote handlers.Pinger
	if app.Remote != nil {
		remote = app.Remote
	}
	httpadapter.RegisterRoutes(
		r,
		handlers.NewHealthHandler(remote, app.Local, app),
		handlers.NewTaskHandler(app.TaskService, app.Location),
		handlers.NewReviewHandler(app.ReviewService, app.Location),
	)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("timezone", app.Location.String()),
			zap.Bool("local_store", app.Remote == nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}
