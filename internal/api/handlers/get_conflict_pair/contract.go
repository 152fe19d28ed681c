package get_conflict_pair

import (
	"context"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

type ConflictRegistry interface {
	GetByPair(ctx context.Context, ownerID, a, b string) (*domain.ConflictRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
