package models

import (
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// UpdateSettingsRequest частичное обновление порогов: nil = не менять
type UpdateSettingsRequest struct {
	TravelBufferMinutes     *int
	UnknownTravelGapMinutes *int
}

// SettingsResponse действующие пороги владельца
type SettingsResponse struct {
	OwnerID                 string
	TravelBufferMinutes     int
	UnknownTravelGapMinutes int
	IsDefault               bool // владелец не переопределял пороги
	UpdatedAt               *time.Time
}

// FromDomainSettings конвертирует сохраненные пороги
func FromDomainSettings(s *domain.OwnerSettings) *SettingsResponse {
	updatedAt := s.UpdatedAt
	return &SettingsResponse{
		OwnerID:                 s.OwnerID,
		TravelBufferMinutes:     s.TravelBufferMinutes,
		UnknownTravelGapMinutes: s.UnknownTravelGapMinutes,
		UpdatedAt:               &updatedAt,
	}
}
