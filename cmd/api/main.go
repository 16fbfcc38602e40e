package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/techstock/engine/internal/api"
	"github.com/techstock/engine/internal/api/handlers"
	"github.com/techstock/engine/internal/repository"
	"github.com/techstock/engine/internal/services"
	"github.com/techstock/engine/pkg/config"
	"github.com/techstock/engine/pkg/database"
	"github.com/techstock/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting techstock engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	log.Info("database connected")

	resourceRepo := repository.NewResourceRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	groupRepo := repository.NewResourceGroupRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	resourceSvc := services.NewResourceService(resourceRepo, subscriptionRepo, groupRepo)
	subscriptionSvc := services.NewSubscriptionService(subscriptionRepo)
	groupSvc := services.NewResourceGroupService(groupRepo, subscriptionRepo)
	applicationSvc := services.NewApplicationService(applicationRepo)
	dashboardSvc := services.NewDashboardService(resourceRepo, subscriptionRepo, groupRepo)
	tagSvc := services.NewTagService(resourceRepo)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer asynqClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	router := api.NewRouter(api.Dependencies{
		DB:                    db,
		ResourcesHandler:      handlers.NewResourcesHandler(resourceSvc, validate),
		SubscriptionsHandler:  handlers.NewSubscriptionsHandler(subscriptionSvc, resourceSvc, groupSvc, validate),
		ResourceGroupsHandler: handlers.NewResourceGroupsHandler(groupSvc, resourceSvc, validate),
		ApplicationsHandler:   handlers.NewApplicationsHandler(applicationSvc, resourceSvc, validate),
		DashboardHandler:      handlers.NewDashboardHandler(dashboardSvc),
		TagsHandler:           handlers.NewTagsHandler(tagSvc),
		ImportHandler:         handlers.NewImportHandler(asynqClient, cfg.ImportCSVPath),
		StatsHandler:          handlers.NewStatsHandler(resourceRepo, subscriptionRepo, groupRepo, applicationRepo),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
