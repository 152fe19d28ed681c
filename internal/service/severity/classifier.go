package severity

import (
	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/internal/service/overlap"
)

// Classifier сопоставляет результату анализа уровень серьезности, причину и рекомендации
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier создает классификатор с заданными порогами
func NewClassifier(thresholds Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Thresholds возвращает текущие пороги
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify применяет правила с порогами классификатора
func (c *Classifier) Classify(res *overlap.Result) domain.ConflictFinding {
	return c.ClassifyWith(res, c.thresholds)
}

// ClassifyWith применяет правила по порядку с заданными порогами, срабатывает первое подходящее
func (c *Classifier) ClassifyWith(res *overlap.Result, th Thresholds) domain.ConflictFinding {
	if res == nil {
		return domain.ConflictFinding{
			Severity:        domain.SeverityManageable,
			TimeUnconfirmed: true,
			Reason:          ReasonNotComparable,
			Recommendations: []string{recConfirmTimes},
		}
	}

	f := domain.ConflictFinding{
		TravelMinutes:   copyInt(res.TravelMinutes),
		DistanceKm:      copyFloat(res.DistanceKm),
		TimeGapMinutes:  copyInt(res.TimeGapMinutes),
		TravelUnknown:   res.TravelUnknown(),
		TimeUnconfirmed: res.TimeUnconfirmed,
		SameVenue:       res.SameVenue,
	}

	gapKnown := res.TimeGapMinutes != nil
	var gap int
	if gapKnown {
		gap = *res.TimeGapMinutes
	}

	switch {
	// 1. Та же площадка и наложение
	case res.SameVenue && res.Overlaps():
		f.Severity = domain.SeverityCritical
		f.Reason = ReasonSameVenueOverlap
		f.Recommendations = []string{recContactClient, recConfirmVenueSlot}

	// 2. Разные площадки и наложение
	case !res.SameVenue && res.Overlaps():
		f.Severity = domain.SeverityCritical
		f.Reason = ReasonDifferentVenues
		f.Recommendations = []string{recContactClient, recDoNotConfirmBoth}

	// 3. Переезд дольше промежутка
	case !res.SameVenue && gapKnown && res.TravelKnown() && *res.TravelMinutes > gap:
		f.Severity = domain.SeverityCritical
		f.Reason = ReasonInsufficientTravel
		f.Recommendations = []string{recDeclineLater, recMoveLaterStart, recTransport}

	// 4. Запас после переезда меньше буфера
	case !res.SameVenue && gapKnown && res.TravelKnown() && gap-*res.TravelMinutes < th.TravelBufferMinutes:
		f.Severity = domain.SeverityWarning
		f.Reason = ReasonTightTravel
		f.Recommendations = []string{recTransport, recDeclineLater, recLoadIn}

	// 5. Время не подтверждено в тот же день
	case res.TimeUnconfirmed && res.SameDate:
		f.Severity = domain.SeverityWarning
		f.Reason = ReasonTimeUnconfirmed
		f.Recommendations = []string{recConfirmTimes, recVerifyBeforeBoth}

	// 6. Переезд неизвестен, промежуток небольшой
	case res.TravelUnknown() && gapKnown && gap < th.UnknownTravelGapMinutes:
		f.Severity = domain.SeverityWarning
		f.Reason = ReasonTravelUnknown
		f.Recommendations = []string{recCheckTravel, recTransport}

	// 7. Всё остальное
	default:
		f.Severity = domain.SeverityManageable
		f.Reason = ReasonAdequate
		f.Recommendations = []string{recWatchTimingChanges}
	}

	return f
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
