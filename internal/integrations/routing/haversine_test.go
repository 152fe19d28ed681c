package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gig-conflicts/internal/domain"
)

func TestHaversine_Estimate(t *testing.T) {
	h := NewHaversine(30, 1.0)

	// ~11.1 км на один градус широты
	est, err := h.Estimate(context.Background(),
		domain.Location{Latitude: 50, Longitude: 0, HasCoords: true},
		domain.Location{Latitude: 50.1, Longitude: 0, HasCoords: true},
	)
	require.NoError(t, err)
	assert.InDelta(t, 11.1, est.DistanceKm, 0.1)
	assert.Equal(t, 23, est.Minutes)
}

func TestHaversine_NoCoordinates(t *testing.T) {
	h := NewHaversine(30, 1.3)
	_, err := h.Estimate(context.Background(),
		domain.Location{Address: "Riverside"},
		domain.Location{Latitude: 50, Longitude: 0, HasCoords: true},
	)
	assert.ErrorIs(t, err, ErrUnavailable)
}
