package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/gig-conflicts/internal/config"
	conflictRepo "github.com/m04kA/gig-conflicts/internal/infra/storage/conflict"
	"github.com/m04kA/gig-conflicts/internal/infra/storage/schema"
	settingsRepo "github.com/m04kA/gig-conflicts/internal/infra/storage/settings"
	"github.com/m04kA/gig-conflicts/internal/integrations/bookingservice"
	"github.com/m04kA/gig-conflicts/internal/integrations/routing"
	"github.com/m04kA/gig-conflicts/internal/service/conflicts"
	"github.com/m04kA/gig-conflicts/internal/service/overlap"
	"github.com/m04kA/gig-conflicts/internal/service/settings"
	"github.com/m04kA/gig-conflicts/internal/service/severity"
	onChanged "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_changed"
	onRemoved "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_removed"
	"github.com/m04kA/gig-conflicts/pkg/dbmetrics"
	"github.com/m04kA/gig-conflicts/pkg/logger"
	"github.com/m04kA/gig-conflicts/pkg/metrics"
	"github.com/m04kA/gig-conflicts/pkg/psqlbuilder"
	"github.com/m04kA/gig-conflicts/pkg/txmanager"
)

// app собранные зависимости сервиса
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	raw     *sql.DB
	db      *dbmetrics.DB

	registry  *conflicts.Registry
	settings  *settings.Service
	onChanged *onChanged.UseCase
	onRemoved *onRemoved.UseCase

	stopMetricsCh chan struct{}
}

// openDB открывает соединение с БД выбранного драйвера и проверяет его
func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// Один писатель: SQLite сериализует запись на уровне файла
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

func dialect(cfg config.DatabaseConfig) psqlbuilder.Dialect {
	if cfg.Driver == config.DriverSQLite {
		return psqlbuilder.DialectSQLite
	}
	return psqlbuilder.DialectPostgres
}

func newEstimator(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) routing.Estimator {
	var inner routing.Estimator
	switch cfg.Travel.Provider {
	case config.TravelProviderHTTP:
		inner = routing.NewClient(cfg.Travel.URL, cfg.EstimatorTimeout(), log)
	default:
		inner = routing.NewHaversine(cfg.Travel.AverageSpeedKmh, cfg.Travel.RoadFactor)
	}
	return routing.NewCached(inner, cfg.Travel.CacheSize, cfg.CacheTTL(), m)
}

// newApp собирает зависимости: БД, схема, реестр, use cases
// withMetrics = false для CLI команд
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger, withMetrics bool) (*app, error) {
	a := &app{cfg: cfg, log: log, stopMetricsCh: make(chan struct{})}

	if withMetrics && cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	raw, err := openDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a.raw = raw
	log.Info("Connected to database (driver=%s)", cfg.Database.Driver)

	d := dialect(cfg.Database)
	applied, err := schema.Apply(ctx, raw, d)
	if err != nil {
		raw.Close()
		return nil, err
	}
	if applied {
		log.Info("Schema version %d applied", schema.Version)
	}

	if a.metrics != nil {
		a.db = dbmetrics.WrapWithDefault(raw, a.metrics, a.stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		a.db = dbmetrics.Plain(raw)
	}

	txMgr := txmanager.NewTransactionManager(a.db)
	repo := conflictRepo.NewRepository(a.db, d)
	a.registry = conflicts.NewRegistry(repo, txMgr, conflicts.SystemClock{}, a.metrics, log)

	source := bookingservice.NewClient(
		cfg.BookingService.URL,
		time.Duration(cfg.BookingService.Timeout)*time.Second,
		log,
	)
	estimator := newEstimator(cfg, log, a.metrics)
	log.Info("Integration clients initialized (BookingService=%s, travel provider=%s, estimator timeout=%s)",
		cfg.BookingService.URL, cfg.Travel.Provider, cfg.EstimatorTimeout())

	analyzer := overlap.NewAnalyzer(source, estimator, cfg.EstimatorTimeout(), log)
	defaults := severity.Thresholds{
		TravelBufferMinutes:     cfg.Conflicts.TravelBufferMinutes,
		UnknownTravelGapMinutes: cfg.Conflicts.UnknownTravelGapMinutes,
	}
	classifier := severity.NewClassifier(defaults)
	a.settings = settings.NewService(settingsRepo.NewRepository(a.db, d), defaults, nil, log)

	a.onChanged = onChanged.NewUseCase(
		source,
		analyzer,
		classifier,
		a.settings,
		a.registry,
		txMgr,
		a.metrics,
		onChanged.Options{
			ScanWindowDays:       cfg.Conflicts.ScanWindowDays,
			MaxParallelEstimates: cfg.Conflicts.MaxParallelEstimates,
		},
		log,
	)
	a.onRemoved = onRemoved.NewUseCase(a.registry, log)

	return a, nil
}

// Close останавливает фоновые задачи и закрывает БД
func (a *app) Close() {
	close(a.stopMetricsCh)
	if err := a.raw.Close(); err != nil {
		a.log.Error("Failed to close database: %v", err)
	}
}
