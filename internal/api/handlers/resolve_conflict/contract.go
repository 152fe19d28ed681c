package resolve_conflict

import (
	"context"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

type ConflictRegistry interface {
	GetByID(ctx context.Context, id int64) (*domain.ConflictRecord, error)
	Resolve(ctx context.Context, id int64, resolution domain.Resolution, notes *string) (*domain.ConflictRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
