package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	getActiveConflictsHandler "github.com/m04kA/gig-conflicts/internal/api/handlers/get_active_conflicts"
	getConflictPairHandler "github.com/m04kA/gig-conflicts/internal/api/handlers/get_conflict_pair"
	getOwnerSettingsHandler "github.com/m04kA/gig-conflicts/internal/api/handlers/get_owner_settings"
	onEngagementChangedHandler "github.com/m04kA/gig-conflicts/internal/api/handlers/on_engagement_changed"
	removeEngagementHandler "github.com/m04kA/gig-conflicts/internal/api/handlers/remove_engagement"
	resetOwnerSettingsHandler "github.com/m04kA/gig-conflicts/internal/api/handlers/reset_owner_settings"
	resolveConflictHandler "github.com/m04kA/gig-conflicts/internal/api/handlers/resolve_conflict"
	updateOwnerSettingsHandler "github.com/m04kA/gig-conflicts/internal/api/handlers/update_owner_settings"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	// Загружаем конфигурацию
	cfg, err := opts.load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting gig-conflicts...")
	log.Info("Configuration loaded from %s", opts.configPath)

	a, err := newApp(ctx, cfg, log, true)
	if err != nil {
		log.Error("Failed to initialize application: %v", err)
		return err
	}
	defer a.Close()

	// Инициализируем handlers
	onChanged := onEngagementChangedHandler.NewHandler(a.onChanged, log)
	removeEngagement := removeEngagementHandler.NewHandler(a.onRemoved, log)
	getActiveConflicts := getActiveConflictsHandler.NewHandler(a.registry, log)
	getConflictPair := getConflictPairHandler.NewHandler(a.registry, log)
	resolveConflict := resolveConflictHandler.NewHandler(a.registry, log)
	getOwnerSettings := getOwnerSettingsHandler.NewHandler(a.settings, log)
	updateOwnerSettings := updateOwnerSettingsHandler.NewHandler(a.settings, log)
	resetOwnerSettings := resetOwnerSettingsHandler.NewHandler(a.settings, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, a.metrics.Handler()).Methods(http.MethodGet)
		log.Info("HTTP metrics middleware enabled")
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// Пересчет после изменения обязательства
	api.HandleFunc("/owners/{ownerId}/engagements/changed", onChanged.Handle).Methods(http.MethodPost)

	// Очистка после удаления обязательства
	api.HandleFunc("/owners/{ownerId}/engagements/{engagementId}", removeEngagement.Handle).Methods(http.MethodDelete)

	// Нерешенные конфликты владельца
	api.HandleFunc("/owners/{ownerId}/conflicts", getActiveConflicts.Handle).Methods(http.MethodGet)

	// Конфликт конкретной пары
	api.HandleFunc("/owners/{ownerId}/conflicts/pair", getConflictPair.Handle).Methods(http.MethodGet)

	// Закрытие конфликта решением
	api.HandleFunc("/conflicts/{conflictId}/resolve", resolveConflict.Handle).Methods(http.MethodPatch)

	// Пороги серьезности владельца
	api.HandleFunc("/owners/{ownerId}/settings", getOwnerSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/owners/{ownerId}/settings", updateOwnerSettings.Handle).Methods(http.MethodPut)
	api.HandleFunc("/owners/{ownerId}/settings", resetOwnerSettings.Handle).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		return err
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
