package overlap

import "github.com/m04kA/gig-conflicts/internal/domain"

// TravelStatus исход оценки переезда
type TravelStatus string

const (
	TravelNotEvaluated TravelStatus = "not_evaluated" // та же площадка или время не подтверждено
	TravelOK           TravelStatus = "ok"
	TravelUnavailable  TravelStatus = "unavailable"
	TravelTimeout      TravelStatus = "timeout"
)

// Result временное соотношение двух обязательств и осуществимость переезда между ними
type Result struct {
	// First начинается раньше (при неизвестном времени порядок по дате и ID)
	First  *domain.Engagement
	Second *domain.Engagement

	SameDate        bool
	SameVenue       bool
	TimeUnconfirmed bool

	// TimeGapMinutes промежуток между окончанием First и началом Second
	// Отрицательное значение = величина наложения, nil = время не подтверждено
	TimeGapMinutes *int

	Travel        TravelStatus
	TravelMinutes *int
	DistanceKm    *float64
}

// Overlaps возвращает true, если интервалы пересекаются
// Стык (окончание одного равно началу другого) пересечением не считается
func (r *Result) Overlaps() bool {
	return r.TimeGapMinutes != nil && *r.TimeGapMinutes < 0
}

// TravelUnknown возвращает true, если оценщик не смог посчитать переезд
func (r *Result) TravelUnknown() bool {
	return r.Travel == TravelUnavailable || r.Travel == TravelTimeout
}

// TravelKnown возвращает true, если время в пути получено
func (r *Result) TravelKnown() bool {
	return r.Travel == TravelOK && r.TravelMinutes != nil
}
