package on_engagement_changed

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	"github.com/m04kA/gig-conflicts/internal/domain"
	onChanged "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_changed"
	"github.com/m04kA/gig-conflicts/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
	errInvalidKind = errors.New("invalid kind")
)

// EngagementChangedRequest HTTP request model: обязательство в актуальном состоянии
type EngagementChangedRequest struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Date      string  `json:"date"`                // "2026-06-12"
	StartTime *string `json:"startTime,omitempty"` // "20:00", null = не подтверждено
	EndTime   *string `json:"endTime,omitempty"`   // "23:00", null = не подтверждено
	VenueID   string  `json:"venueId,omitempty"`
	Venue     string  `json:"venue,omitempty"`
	Status    string  `json:"status"`
}

// EngagementChangedResponse HTTP response model
type EngagementChangedResponse struct {
	handlers.ActiveConflictsResponse
	Detected int   `json:"detected"`
	Purged   int64 `json:"purged"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EngagementChangedRequest) ToUseCaseRequest(ownerID string) (*onChanged.Request, error) {
	kind := domain.EngagementKind(r.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", errInvalidKind, r.Kind)
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	start, err := parseTime(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &onChanged.Request{
		OwnerID: ownerID,
		Engagement: &domain.Engagement{
			ID:        r.ID,
			OwnerID:   ownerID,
			Kind:      kind,
			Date:      date,
			StartTime: start,
			EndTime:   end,
			Venue:     domain.Venue{ID: r.VenueID, Text: r.Venue},
			Status:    domain.EngagementStatus(r.Status),
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *onChanged.Response) *EngagementChangedResponse {
	return &EngagementChangedResponse{
		ActiveConflictsResponse: *handlers.FromActiveConflicts(resp.Active),
		Detected:                resp.Detected,
		Purged:                  resp.Purged,
	}
}

func parseTime(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}
	return &t, nil
}
