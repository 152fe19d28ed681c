package resolve_conflict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/internal/service/conflicts"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

type fakeRegistry struct {
	records map[int64]*domain.ConflictRecord
}

func (f *fakeRegistry) GetByID(ctx context.Context, id int64) (*domain.ConflictRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, conflicts.ErrConflictNotFound
	}
	return rec, nil
}

func (f *fakeRegistry) Resolve(ctx context.Context, id int64, resolution domain.Resolution, notes *string) (*domain.ConflictRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, conflicts.ErrConflictNotFound
	}
	if !resolution.IsValid() {
		return nil, conflicts.ErrInvalidInput
	}
	if rec.IsResolved {
		return nil, conflicts.ErrAlreadyResolved
	}
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	rec.IsResolved = true
	rec.Resolution = &resolution
	rec.Notes = notes
	rec.ResolvedAt = &now
	return rec, nil
}

func newRegistry() *fakeRegistry {
	return &fakeRegistry{records: map[int64]*domain.ConflictRecord{
		1: {ID: 1, OwnerID: "owner-1", Severity: domain.SeverityCritical},
	}}
}

func serve(h *Handler, id, caller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/conflicts/"+id+"/resolve", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"conflictId": id})
	if caller != "" {
		req = req.WithContext(middleware.WithOwnerID(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ResolveThenConflict(t *testing.T) {
	h := NewHandler(newRegistry(), logger.Nop())

	rec := serve(h, "1", "owner-1", `{"resolution":"rescheduled","notes":"moved to Sunday"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RESOLVED", body.State)
	require.NotNil(t, body.Resolution)
	assert.Equal(t, "rescheduled", *body.Resolution)
	assert.Equal(t, "moved to Sunday", *body.Notes)
	assert.NotNil(t, body.ResolvedAt)

	rec = serve(h, "1", "owner-1", `{"resolution":"accepted"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		caller   string
		body     string
		wantCode int
	}{
		{"bad id", "abc", "owner-1", `{"resolution":"accepted"}`, http.StatusBadRequest},
		{"zero id", "0", "owner-1", `{"resolution":"accepted"}`, http.StatusBadRequest},
		{"missing owner", "1", "", `{"resolution":"accepted"}`, http.StatusUnauthorized},
		{"bad body", "1", "owner-1", `not json`, http.StatusBadRequest},
		{"not found", "42", "owner-1", `{"resolution":"accepted"}`, http.StatusNotFound},
		{"other owner", "1", "owner-2", `{"resolution":"accepted"}`, http.StatusForbidden},
		{"unknown resolution", "1", "owner-1", `{"resolution":"ignored"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(newRegistry(), logger.Nop())
			rec := serve(h, tt.id, tt.caller, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
