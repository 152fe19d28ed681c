package get_owner_settings

import (
	"time"

	"github.com/m04kA/gig-conflicts/internal/service/settings/models"
)

// OwnerSettingsResponse HTTP response model
type OwnerSettingsResponse struct {
	OwnerID                 string  `json:"ownerId"`
	TravelBufferMinutes     int     `json:"travelBufferMinutes"`
	UnknownTravelGapMinutes int     `json:"unknownTravelGapMinutes"`
	IsDefault               bool    `json:"isDefault"`
	UpdatedAt               *string `json:"updatedAt,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SettingsResponse) *OwnerSettingsResponse {
	out := &OwnerSettingsResponse{
		OwnerID:                 resp.OwnerID,
		TravelBufferMinutes:     resp.TravelBufferMinutes,
		UnknownTravelGapMinutes: resp.UnknownTravelGapMinutes,
		IsDefault:               resp.IsDefault,
	}
	if resp.UpdatedAt != nil {
		at := resp.UpdatedAt.Format(time.RFC3339)
		out.UpdatedAt = &at
	}
	return out
}
