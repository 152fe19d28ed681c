package get_active_conflicts

import (
	"context"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

type ConflictRegistry interface {
	ListActive(ctx context.Context, ownerID string) ([]*domain.ConflictRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
