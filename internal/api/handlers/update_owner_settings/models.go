package update_owner_settings

import (
	"github.com/m04kA/gig-conflicts/internal/service/settings/models"
)

// UpdateOwnerSettingsRequest HTTP request model
type UpdateOwnerSettingsRequest struct {
	TravelBufferMinutes     *int `json:"travelBufferMinutes,omitempty"`
	UnknownTravelGapMinutes *int `json:"unknownTravelGapMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateOwnerSettingsRequest) ToServiceRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		TravelBufferMinutes:     r.TravelBufferMinutes,
		UnknownTravelGapMinutes: r.UnknownTravelGapMinutes,
	}
}
