package on_engagement_removed

import (
	"context"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// ConflictRegistry реестр конфликтов
type ConflictRegistry interface {
	PurgeEngagement(ctx context.Context, ownerID, engagementID string) (int64, error)
	ListActive(ctx context.Context, ownerID string) ([]*domain.ConflictRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
