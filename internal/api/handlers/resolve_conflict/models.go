package resolve_conflict

import "github.com/m04kA/gig-conflicts/internal/domain"

// ResolveConflictRequest HTTP request model
type ResolveConflictRequest struct {
	Resolution string  `json:"resolution"` // accepted | declined | rescheduled
	Notes      *string `json:"notes,omitempty"`
}

// ToResolution возвращает решение в доменном типе
func (r *ResolveConflictRequest) ToResolution() domain.Resolution {
	return domain.Resolution(r.Resolution)
}
