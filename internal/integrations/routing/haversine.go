package routing

import (
	"context"
	"fmt"
	"math"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

const earthRadiusKm = 6371.0

// Haversine офлайн-оценщик по координатам: расстояние по дуге большого круга,
// умноженное на коэффициент извилистости дорог, при средней скорости
type Haversine struct {
	averageSpeedKmh float64
	roadFactor      float64
}

// NewHaversine создает офлайн-оценщик
func NewHaversine(averageSpeedKmh, roadFactor float64) *Haversine {
	return &Haversine{averageSpeedKmh: averageSpeedKmh, roadFactor: roadFactor}
}

// Estimate возвращает ErrUnavailable, если у одной из точек нет координат
func (h *Haversine) Estimate(ctx context.Context, origin, dest domain.Location) (*Estimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if !origin.HasCoords || !dest.HasCoords {
		return nil, fmt.Errorf("%w: coordinates are required", ErrUnavailable)
	}
	if h.averageSpeedKmh <= 0 {
		return nil, fmt.Errorf("%w: average speed must be positive", ErrInternal)
	}

	km := greatCircleKm(origin, dest) * h.roadFactor
	minutes := int(math.Ceil(km / h.averageSpeedKmh * 60))

	return &Estimate{Minutes: minutes, DistanceKm: math.Round(km*10) / 10}, nil
}

func greatCircleKm(a, b domain.Location) float64 {
	lat1, lat2 := toRad(a.Latitude), toRad(b.Latitude)
	dLat := lat2 - lat1
	dLng := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
