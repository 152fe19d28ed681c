package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

func TestClient_Estimate_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/routes/estimate", r.URL.Path)
		assert.Equal(t, "Riverside", r.URL.Query().Get("origin_address"))
		assert.Equal(t, "51.5", r.URL.Query().Get("dest_lat"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"duration_minutes": 44.2, "distance_km": 18.5}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())
	est, err := c.Estimate(context.Background(),
		domain.Location{Address: "Riverside"},
		domain.Location{Latitude: 51.5, Longitude: -0.02, HasCoords: true},
	)
	require.NoError(t, err)
	assert.Equal(t, 45, est.Minutes)
	assert.InDelta(t, 18.5, est.DistanceKm, 0.001)
}

func TestClient_Estimate_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())
	_, err := c.Estimate(context.Background(), domain.Location{Address: "a"}, domain.Location{Address: "b"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Estimate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Estimate(ctx, domain.Location{Address: "a"}, domain.Location{Address: "b"})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Estimate_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, logger.Nop())
	_, err := c.Estimate(context.Background(), domain.Location{Address: "a"}, domain.Location{Address: "b"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
