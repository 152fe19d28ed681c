package remove_engagement

import (
	"context"

	onRemoved "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_removed"
)

type OnEngagementRemovedUseCase interface {
	Execute(ctx context.Context, req *onRemoved.Request) (*onRemoved.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
