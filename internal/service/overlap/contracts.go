package overlap

import (
	"context"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/internal/integrations/routing"
)

// VenueLocator источник координат площадок
// Возвращает nil без ошибки, если площадка неизвестна
type VenueLocator interface {
	GetVenueLocation(ctx context.Context, venueID string) (*domain.Location, error)
}

// TravelEstimator оценщик времени в пути
type TravelEstimator interface {
	Estimate(ctx context.Context, origin, dest domain.Location) (*routing.Estimate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
