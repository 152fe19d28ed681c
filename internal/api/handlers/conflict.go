package handlers

import (
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// ConflictResponse HTTP модель записи о конфликте
type ConflictResponse struct {
	ID                      int64    `json:"id"`
	OwnerID                 string   `json:"ownerId"`
	PairKey                 string   `json:"pairKey"`
	PrimaryEngagementID     string   `json:"primaryEngagementId"`
	ConflictingEngagementID string   `json:"conflictingEngagementId"`
	PrimaryKind             string   `json:"primaryKind"`
	ConflictingKind         string   `json:"conflictingKind"`
	Severity                string   `json:"severity"`
	Reason                  string   `json:"reason"`
	Recommendations         []string `json:"recommendations"`
	TravelMinutes           *int     `json:"travelMinutes,omitempty"`
	DistanceKm              *float64 `json:"distanceKm,omitempty"`
	TimeGapMinutes          *int     `json:"timeGapMinutes,omitempty"`
	TravelUnknown           bool     `json:"travelUnknown"`
	State                   string   `json:"state"`
	Resolution              *string  `json:"resolution,omitempty"`
	Notes                   *string  `json:"notes,omitempty"`
	CreatedAt               string   `json:"createdAt"`
	UpdatedAt               string   `json:"updatedAt"`
	ResolvedAt              *string  `json:"resolvedAt,omitempty"`
}

// ActiveConflictsResponse набор нерешенных конфликтов владельца
type ActiveConflictsResponse struct {
	Conflicts          []*ConflictResponse `json:"conflicts"`
	BlocksConfirmation bool                `json:"blocksConfirmation"`
}

// FromConflict конвертирует доменную запись в HTTP модель
func FromConflict(r *domain.ConflictRecord) *ConflictResponse {
	resp := &ConflictResponse{
		ID:                      r.ID,
		OwnerID:                 r.OwnerID,
		PairKey:                 string(r.PairKey),
		PrimaryEngagementID:     r.PrimaryEngagementID,
		ConflictingEngagementID: r.ConflictingEngagementID,
		PrimaryKind:             string(r.PrimaryKind),
		ConflictingKind:         string(r.ConflictingKind),
		Severity:                string(r.Severity),
		Reason:                  r.Reason,
		Recommendations:         r.Recommendations,
		TravelMinutes:           r.TravelMinutes,
		DistanceKm:              r.DistanceKm,
		TimeGapMinutes:          r.TimeGapMinutes,
		TravelUnknown:           r.TravelUnknown,
		State:                   r.State(),
		Notes:                   r.Notes,
		CreatedAt:               r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               r.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []string{}
	}
	if r.Resolution != nil {
		res := string(*r.Resolution)
		resp.Resolution = &res
	}
	if r.ResolvedAt != nil {
		at := r.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &at
	}
	return resp
}

// FromActiveConflicts конвертирует набор нерешенных записей
func FromActiveConflicts(records []*domain.ConflictRecord) *ActiveConflictsResponse {
	out := &ActiveConflictsResponse{
		Conflicts:          make([]*ConflictResponse, 0, len(records)),
		BlocksConfirmation: domain.BlocksConfirmation(records),
	}
	for _, r := range records {
		out.Conflicts = append(out.Conflicts, FromConflict(r))
	}
	return out
}
