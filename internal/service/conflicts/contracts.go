package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// ConflictRepository интерфейс репозитория записей о конфликтах
type ConflictRepository interface {
	Upsert(ctx context.Context, rec *domain.ConflictRecord) (*domain.ConflictRecord, error)
	GetByID(ctx context.Context, id int64) (*domain.ConflictRecord, error)
	GetActiveByPair(ctx context.Context, ownerID string, pairKey domain.PairKey) (*domain.ConflictRecord, error)
	ListActive(ctx context.Context, ownerID string) ([]*domain.ConflictRecord, error)
	MarkResolved(ctx context.Context, id int64, resolution domain.Resolution, notes *string, resolvedAt time.Time) error
	DeleteStale(ctx context.Context, ownerID, engagementID string, keep []domain.PairKey) (int64, error)
	DeleteByEngagement(ctx context.Context, ownerID, engagementID string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder счетчики реестра
type MetricsRecorder interface {
	IncResolved(resolution string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
