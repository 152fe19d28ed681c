package on_engagement_changed

import (
	"context"
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/internal/service/overlap"
	"github.com/m04kA/gig-conflicts/internal/service/severity"
)

// EngagementSource источник обязательств владельца
type EngagementSource interface {
	ListByOwnerAndDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Engagement, error)
}

// Analyzer анализатор наложения пары обязательств
type Analyzer interface {
	Analyze(ctx context.Context, a, b *domain.Engagement) *overlap.Result
}

// Classifier классификатор серьезности
type Classifier interface {
	Thresholds() severity.Thresholds
	ClassifyWith(res *overlap.Result, th severity.Thresholds) domain.ConflictFinding
}

// ThresholdsProvider пороги классификации конкретного владельца
type ThresholdsProvider interface {
	Thresholds(ctx context.Context, ownerID string) (severity.Thresholds, error)
}

// ConflictRegistry реестр конфликтов
type ConflictRegistry interface {
	Upsert(ctx context.Context, ownerID string, primary, conflicting *domain.Engagement, finding domain.ConflictFinding) (*domain.ConflictRecord, error)
	PurgeStale(ctx context.Context, ownerID, involving string, valid []domain.PairKey) (int64, error)
	ListActive(ctx context.Context, ownerID string) ([]*domain.ConflictRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder счетчики сверки
type MetricsRecorder interface {
	IncFinding(severity string)
	IncReconcileRetry()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
