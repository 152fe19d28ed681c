package domain

import "time"

// OwnerSettings пороги классификации конкретного исполнителя
// Отсутствие записи означает пороги сервиса по умолчанию
type OwnerSettings struct {
	OwnerID                 string
	TravelBufferMinutes     int
	UnknownTravelGapMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Ограничения порогов исполнителя
const (
	MaxTravelBufferMinutes     = 24 * 60
	MaxUnknownTravelGapMinutes = 24 * 60
)
