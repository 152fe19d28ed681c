package bookingservice

import (
	"fmt"
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Engagement модель обязательства из сервиса бронирований
type Engagement struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"owner_id"`
	Kind      string  `json:"kind"`
	Date      string  `json:"date"`                 // YYYY-MM-DD
	StartTime *string `json:"start_time,omitempty"` // HH:MM, null = не подтверждено
	EndTime   *string `json:"end_time,omitempty"`   // HH:MM, null = не подтверждено
	VenueID   string  `json:"venue_id,omitempty"`
	VenueText string  `json:"venue,omitempty"`
	Status    string  `json:"status"`
}

// EngagementList ответ со списком обязательств
type EngagementList struct {
	Engagements []Engagement `json:"engagements"`
}

// VenueLocation модель локации площадки
type VenueLocation struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address"`
}

// ErrorResponse модель ошибки от сервиса бронирований
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует модель сервиса в доменную сущность
func (e Engagement) ToDomain() (*domain.Engagement, error) {
	if err := domain.ValidateEngagementID(e.ID); err != nil {
		return nil, err
	}
	if e.OwnerID == "" || len(e.OwnerID) > domain.MaxIDLength {
		return nil, fmt.Errorf("engagement %s: owner id is required and must be at most %d characters", e.ID, domain.MaxIDLength)
	}

	kind := domain.EngagementKind(e.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("engagement %s: unknown kind %q", e.ID, e.Kind)
	}

	date, err := time.Parse(domain.DateFormat, e.Date)
	if err != nil {
		return nil, fmt.Errorf("engagement %s: invalid date %q", e.ID, e.Date)
	}

	start, err := parseOptionalTime(e.StartTime)
	if err != nil {
		return nil, fmt.Errorf("engagement %s: start time: %v", e.ID, err)
	}
	end, err := parseOptionalTime(e.EndTime)
	if err != nil {
		return nil, fmt.Errorf("engagement %s: end time: %v", e.ID, err)
	}

	return &domain.Engagement{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Kind:      kind,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Venue:     domain.Venue{ID: e.VenueID, Text: e.VenueText},
		Status:    domain.EngagementStatus(e.Status),
	}, nil
}

// ToDomain конвертирует локацию площадки
func (v VenueLocation) ToDomain() *domain.Location {
	loc := &domain.Location{Address: v.Address}
	if v.Latitude != nil && v.Longitude != nil {
		loc.Latitude = *v.Latitude
		loc.Longitude = *v.Longitude
		loc.HasCoords = true
	}
	return loc
}

func parseOptionalTime(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
