package reset_owner_settings

import (
	"context"

	"github.com/m04kA/gig-conflicts/internal/service/settings/models"
)

type SettingsService interface {
	Reset(ctx context.Context, ownerID string) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
