package on_engagement_removed

import (
	"context"
	"fmt"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// UseCase очистка конфликтов обязательства, удаленного в основном приложении
type UseCase struct {
	registry ConflictRegistry
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(registry ConflictRegistry, logger Logger) *UseCase {
	return &UseCase{
		registry: registry,
		logger:   logger,
	}
}

// Execute удаляет все записи с участием обязательства и возвращает актуальный набор
// Повторный вызов безопасен: удалять уже нечего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.OwnerID == "" || len(req.OwnerID) > domain.MaxIDLength {
		return nil, fmt.Errorf("%w: ownerID is required and must be at most %d characters", ErrInvalidInput, domain.MaxIDLength)
	}
	if err := domain.ValidateEngagementID(req.EngagementID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("OnEngagementRemoved: owner=%s, engagement=%s", req.OwnerID, req.EngagementID)

	removed, err := uc.registry.PurgeEngagement(ctx, req.OwnerID, req.EngagementID)
	if err != nil {
		uc.logger.Error("OnEngagementRemoved: failed to purge conflicts for engagement=%s: %v", req.EngagementID, err)
		return nil, fmt.Errorf("%w: purge: %v", ErrInternal, err)
	}

	active, err := uc.registry.ListActive(ctx, req.OwnerID)
	if err != nil {
		uc.logger.Error("OnEngagementRemoved: failed to list active conflicts for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: list active: %v", ErrInternal, err)
	}

	return &Response{Removed: removed, Active: active}, nil
}
