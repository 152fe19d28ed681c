package get_active_conflicts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

type fakeRegistry struct {
	records []*domain.ConflictRecord
	err     error
}

func (f *fakeRegistry) ListActive(ctx context.Context, ownerID string) ([]*domain.ConflictRecord, error) {
	return f.records, f.err
}

func serve(reg ConflictRegistry, caller string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/owners/owner-1/conflicts", nil)
	req = mux.SetURLVars(req, map[string]string{"ownerId": "owner-1"})
	if caller != "" {
		req = req.WithContext(middleware.WithOwnerID(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	NewHandler(reg, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	reg := &fakeRegistry{records: []*domain.ConflictRecord{
		{ID: 1, OwnerID: "owner-1", Severity: domain.SeverityWarning},
	}}

	rec := serve(reg, "owner-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.ActiveConflictsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Conflicts, 1)
	assert.False(t, body.BlocksConfirmation)

	assert.Equal(t, http.StatusForbidden, serve(reg, "owner-2").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(reg, "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeRegistry{err: errors.New("db down")}, "owner-1").Code)
}
