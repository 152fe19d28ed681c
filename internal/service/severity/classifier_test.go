package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/internal/service/overlap"
)

func intPtr(v int) *int { return &v }

func travel(minutes int) (overlap.TravelStatus, *int) {
	return overlap.TravelOK, intPtr(minutes)
}

func result(sameVenue bool, gap *int, status overlap.TravelStatus, travelMinutes *int) *overlap.Result {
	return &overlap.Result{
		First:          &domain.Engagement{ID: "a"},
		Second:         &domain.Engagement{ID: "b"},
		SameDate:       true,
		SameVenue:      sameVenue,
		TimeGapMinutes: gap,
		Travel:         status,
		TravelMinutes:  travelMinutes,
	}
}

func TestClassify_Rules(t *testing.T) {
	ok45, min45 := travel(45)

	tests := []struct {
		name     string
		res      *overlap.Result
		severity domain.Severity
		reason   string
	}{
		{
			name:     "same venue overlap",
			res:      result(true, intPtr(-60), overlap.TravelNotEvaluated, nil),
			severity: domain.SeverityCritical,
			reason:   ReasonSameVenueOverlap,
		},
		{
			name:     "different venues overlap",
			res:      result(false, intPtr(-10), ok45, min45),
			severity: domain.SeverityCritical,
			reason:   ReasonDifferentVenues,
		},
		{
			name:     "different venues overlap with unknown travel",
			res:      result(false, intPtr(-10), overlap.TravelTimeout, nil),
			severity: domain.SeverityCritical,
			reason:   ReasonDifferentVenues,
		},
		{
			name:     "travel longer than gap",
			res:      result(false, intPtr(30), ok45, min45),
			severity: domain.SeverityCritical,
			reason:   ReasonInsufficientTravel,
		},
		{
			name:     "travel equal to gap",
			res:      result(false, intPtr(45), ok45, min45),
			severity: domain.SeverityWarning,
			reason:   ReasonTightTravel,
		},
		{
			name:     "buffer just short",
			res:      result(false, intPtr(74), ok45, min45),
			severity: domain.SeverityWarning,
			reason:   ReasonTightTravel,
		},
		{
			name:     "buffer met exactly",
			res:      result(false, intPtr(75), ok45, min45),
			severity: domain.SeverityManageable,
			reason:   ReasonAdequate,
		},
		{
			name:     "travel unknown and small gap",
			res:      result(false, intPtr(30), overlap.TravelTimeout, nil),
			severity: domain.SeverityWarning,
			reason:   ReasonTravelUnknown,
		},
		{
			name:     "travel unknown and large gap",
			res:      result(false, intPtr(120), overlap.TravelUnavailable, nil),
			severity: domain.SeverityManageable,
			reason:   ReasonAdequate,
		},
		{
			name:     "same venue back to back",
			res:      result(true, intPtr(0), overlap.TravelNotEvaluated, nil),
			severity: domain.SeverityManageable,
			reason:   ReasonAdequate,
		},
	}

	c := NewClassifier(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := c.Classify(tt.res)
			assert.Equal(t, tt.severity, f.Severity)
			assert.Equal(t, tt.reason, f.Reason)
			assert.NotEmpty(t, f.Recommendations)
		})
	}
}

func TestClassify_TimeUnconfirmed(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	res := result(false, nil, overlap.TravelNotEvaluated, nil)
	res.TimeUnconfirmed = true

	f := c.Classify(res)
	assert.Equal(t, domain.SeverityWarning, f.Severity)
	assert.Equal(t, ReasonTimeUnconfirmed, f.Reason)
	assert.True(t, f.TimeUnconfirmed)
	assert.Nil(t, f.TimeGapMinutes)
}

func TestClassify_RecommendationsPerRule(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	ok45, min45 := travel(45)

	f := c.Classify(result(false, intPtr(30), ok45, min45))
	assert.Contains(t, f.Recommendations, "confirm transport arrangements")
	assert.Contains(t, f.Recommendations, "consider declining the later booking")

	f = c.Classify(result(true, intPtr(-30), overlap.TravelNotEvaluated, nil))
	assert.Contains(t, f.Recommendations, "contact one client to reschedule or decline")
}

func TestClassify_CustomThresholds(t *testing.T) {
	c := NewClassifier(Thresholds{TravelBufferMinutes: 10, UnknownTravelGapMinutes: 30})
	ok45, min45 := travel(45)

	f := c.Classify(result(false, intPtr(60), ok45, min45))
	assert.Equal(t, domain.SeverityManageable, f.Severity)

	f = c.Classify(result(false, intPtr(45), overlap.TravelUnavailable, nil))
	assert.Equal(t, domain.SeverityManageable, f.Severity)

	// Пороги конкретного владельца перекрывают пороги классификатора
	f = c.ClassifyWith(result(false, intPtr(60), ok45, min45), DefaultThresholds())
	assert.Equal(t, domain.SeverityWarning, f.Severity)
	assert.Equal(t, ReasonTightTravel, f.Reason)
}

func TestClassify_CopiesDetails(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	ok45, min45 := travel(45)
	km := 18.2
	res := result(false, intPtr(30), ok45, min45)
	res.DistanceKm = &km

	f := c.Classify(res)
	require.NotNil(t, f.TravelMinutes)
	require.NotNil(t, f.DistanceKm)
	assert.Equal(t, 45, *f.TravelMinutes)
	assert.Equal(t, 30, *f.TimeGapMinutes)
	assert.InDelta(t, 18.2, *f.DistanceKm, 0.001)
	assert.False(t, f.TravelUnknown)

	*res.TravelMinutes = 1
	assert.Equal(t, 45, *f.TravelMinutes)
}

func TestClassify_NilResult(t *testing.T) {
	f := NewClassifier(DefaultThresholds()).Classify(nil)
	assert.Equal(t, domain.SeverityManageable, f.Severity)
	assert.Equal(t, ReasonNotComparable, f.Reason)
}

// Сценарии с площадками Hall 1 и Riverside/Docklands
func TestClassify_Scenarios(t *testing.T) {
	ok45, min45 := travel(45)

	scenarios := []struct {
		name     string
		res      *overlap.Result
		severity domain.Severity
	}{
		{"Hall 1 18:00-20:00 vs 19:00-21:00", result(true, intPtr(-60), overlap.TravelNotEvaluated, nil), domain.SeverityCritical},
		{"Riverside ends 20:00, Docklands starts 20:30", result(false, intPtr(30), ok45, min45), domain.SeverityCritical},
		{"Riverside ends 20:00, Docklands starts 21:15", result(false, intPtr(75), ok45, min45), domain.SeverityManageable},
		{"Riverside/Docklands estimator timeout", result(false, intPtr(30), overlap.TravelTimeout, nil), domain.SeverityWarning},
	}

	c := NewClassifier(DefaultThresholds())
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			assert.Equal(t, s.severity, c.Classify(s.res).Severity)
		})
	}
}
