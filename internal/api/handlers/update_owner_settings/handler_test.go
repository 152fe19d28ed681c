package update_owner_settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gig-conflicts/internal/api/handlers/get_owner_settings"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	"github.com/m04kA/gig-conflicts/internal/service/settings"
	"github.com/m04kA/gig-conflicts/internal/service/settings/models"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

type fakeService struct {
	got *models.UpdateSettingsRequest
}

func (f *fakeService) Update(ctx context.Context, ownerID string, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	f.got = req
	if req.TravelBufferMinutes != nil && *req.TravelBufferMinutes < 0 {
		return nil, fmt.Errorf("%w: negative", settings.ErrInvalidInput)
	}
	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	return &models.SettingsResponse{
		OwnerID:                 ownerID,
		TravelBufferMinutes:     *req.TravelBufferMinutes,
		UnknownTravelGapMinutes: 120,
		UpdatedAt:               &at,
	}, nil
}

func serve(svc SettingsService, caller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/owners/owner-1/settings", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"ownerId": "owner-1"})
	if caller != "" {
		req = req.WithContext(middleware.WithOwnerID(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "owner-1", `{"travelBufferMinutes":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.UnknownTravelGapMinutes)

	var body get_owner_settings.OwnerSettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 60, body.TravelBufferMinutes)
	assert.False(t, body.IsDefault)
	require.NotNil(t, body.UpdatedAt)
	assert.Equal(t, "2026-06-01T09:00:00Z", *body.UpdatedAt)

	assert.Equal(t, http.StatusBadRequest, serve(svc, "owner-1", `{"travelBufferMinutes":-5}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "owner-1", `{"slotDurationMinutes":5}`).Code)
	assert.Equal(t, http.StatusForbidden, serve(svc, "owner-2", `{"travelBufferMinutes":60}`).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(svc, "", `{"travelBufferMinutes":60}`).Code)
}
