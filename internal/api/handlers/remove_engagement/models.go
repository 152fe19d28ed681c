package remove_engagement

import (
	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	onRemoved "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_removed"
)

// EngagementRemovedResponse HTTP response model
type EngagementRemovedResponse struct {
	handlers.ActiveConflictsResponse
	Removed int64 `json:"removed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *onRemoved.Response) *EngagementRemovedResponse {
	return &EngagementRemovedResponse{
		ActiveConflictsResponse: *handlers.FromActiveConflicts(resp.Active),
		Removed:                 resp.Removed,
	}
}
