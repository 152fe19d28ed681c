package reset_owner_settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gig-conflicts/internal/api/handlers/get_owner_settings"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	"github.com/m04kA/gig-conflicts/internal/service/settings/models"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

type fakeService struct {
	resetFor []string
}

func (f *fakeService) Reset(ctx context.Context, ownerID string) (*models.SettingsResponse, error) {
	f.resetFor = append(f.resetFor, ownerID)
	return &models.SettingsResponse{
		OwnerID:                 ownerID,
		TravelBufferMinutes:     30,
		UnknownTravelGapMinutes: 120,
		IsDefault:               true,
	}, nil
}

func serve(svc SettingsService, caller string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/owners/owner-1/settings", nil)
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

	rec := serve(svc, "owner-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body get_owner_settings.OwnerSettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsDefault)
	assert.Equal(t, []string{"owner-1"}, svc.resetFor)

	assert.Equal(t, http.StatusForbidden, serve(svc, "owner-2").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(svc, "").Code)
	assert.Len(t, svc.resetFor, 1)
}
