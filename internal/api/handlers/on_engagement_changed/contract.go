package on_engagement_changed

import (
	"context"

	onChanged "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_changed"
)

type OnEngagementChangedUseCase interface {
	Execute(ctx context.Context, req *onChanged.Request) (*onChanged.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
