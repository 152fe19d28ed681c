package routing

import (
	"context"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

// Estimate оценка переезда между двумя точками
type Estimate struct {
	Minutes    int
	DistanceKm float64
}

// Estimator оценщик времени в пути между двумя площадками
// Возвращает ErrUnavailable или ErrTimeout, если оценку получить нельзя
type Estimator interface {
	Estimate(ctx context.Context, origin, dest domain.Location) (*Estimate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder счетчик исходов обращений к оценщику
type MetricsRecorder interface {
	IncEstimator(outcome string)
}

// routeResponse ответ сервиса маршрутов
type routeResponse struct {
	DurationMinutes float64 `json:"duration_minutes"`
	DistanceKm      float64 `json:"distance_km"`
}

// ErrorResponse модель ошибки сервиса маршрутов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
