package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/gig-conflicts/pkg/types"
)

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func TestVenue_Same(t *testing.T) {
	tests := []struct {
		name string
		a, b Venue
		want bool
	}{
		{"same id", Venue{ID: "7"}, Venue{ID: "7", Text: "other"}, true},
		{"different id", Venue{ID: "7", Text: "Hall 1"}, Venue{ID: "8", Text: "Hall 1"}, false},
		{"text case and spaces", Venue{Text: "  Hall   1 "}, Venue{Text: "hall 1"}, true},
		{"text differs", Venue{Text: "Riverside"}, Venue{Text: "Docklands"}, false},
		{"id vs text falls back to text", Venue{ID: "7", Text: "Hall 1"}, Venue{Text: "HALL 1"}, true},
		{"both empty", Venue{}, Venue{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Same(tt.b))
			assert.Equal(t, tt.want, tt.b.Same(tt.a))
		})
	}
}

func TestEngagement_Window(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	e := Engagement{Date: base, StartTime: ts("18:00"), EndTime: ts("20:00")}
	start, end, ok := e.Window(base)
	assert.True(t, ok)
	assert.Equal(t, 18*60, start)
	assert.Equal(t, 20*60, end)

	overnight := Engagement{Date: base, StartTime: ts("23:00"), EndTime: ts("01:30")}
	start, end, ok = overnight.Window(base)
	assert.True(t, ok)
	assert.Equal(t, 23*60, start)
	assert.Equal(t, 25*60+30, end)

	nextDay := Engagement{Date: base.AddDate(0, 0, 1), StartTime: ts("00:30"), EndTime: ts("02:00")}
	start, _, ok = nextDay.Window(base)
	assert.True(t, ok)
	assert.Equal(t, 24*60+30, start)

	tbc := Engagement{Date: base, StartTime: ts("18:00")}
	_, _, ok = tbc.Window(base)
	assert.False(t, ok)
}

func TestEngagement_IsTerminal(t *testing.T) {
	for _, s := range TerminalStatuses {
		e := Engagement{Status: s}
		assert.True(t, e.IsTerminal(), s)
	}
	e := Engagement{Status: StatusConfirmed}
	assert.False(t, e.IsTerminal())
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 28, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 29, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
	assert.Equal(t, -1, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}
