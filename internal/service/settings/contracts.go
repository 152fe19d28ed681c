package settings

import (
	"context"
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
	settingsRepo "github.com/m04kA/gig-conflicts/internal/infra/storage/settings"
)

// SettingsRepository интерфейс репозитория порогов
type SettingsRepository interface {
	Get(ctx context.Context, ownerID string) (*domain.OwnerSettings, error)
	Upsert(ctx context.Context, s *domain.OwnerSettings, fields settingsRepo.Fields) (*domain.OwnerSettings, error)
	Delete(ctx context.Context, ownerID string) (bool, error)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
