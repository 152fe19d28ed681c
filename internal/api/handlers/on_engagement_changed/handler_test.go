package on_engagement_changed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	"github.com/m04kA/gig-conflicts/internal/domain"
	onChanged "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_changed"
	"github.com/m04kA/gig-conflicts/pkg/logger"
)

type fakeUseCase struct {
	got  *onChanged.Request
	resp *onChanged.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *onChanged.Request) (*onChanged.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{"id":"bk-1","kind":"booking","date":"2026-06-12","startTime":"20:00","endTime":"23:00","venueId":"hall-1","status":"confirmed"}`

func serve(h *Handler, ownerInPath, caller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/owners/"+ownerInPath+"/engagements/changed", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"ownerId": ownerInPath})
	if caller != "" {
		req = req.WithContext(middleware.WithOwnerID(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &onChanged.Response{
		Active: []*domain.ConflictRecord{
			{ID: 7, OwnerID: "owner-1", Severity: domain.SeverityCritical, PairKey: domain.NewPairKey("bk-1", "bk-2")},
		},
		Detected:           1,
		BlocksConfirmation: true,
	}}
	h := NewHandler(uc, logger.Nop())

	rec := serve(h, "owner-1", "owner-1", validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "owner-1", uc.got.OwnerID)
	assert.Equal(t, "owner-1", uc.got.Engagement.OwnerID)
	assert.Equal(t, "hall-1", uc.got.Engagement.Venue.ID)
	assert.Equal(t, "20:00", uc.got.Engagement.StartTime.String())

	var body EngagementChangedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Detected)
	assert.True(t, body.BlocksConfirmation)
	require.Len(t, body.Conflicts, 1)
	assert.Equal(t, "bk-1|bk-2", body.Conflicts[0].PairKey)
}

func TestHandle_UnconfirmedTimeIsAccepted(t *testing.T) {
	uc := &fakeUseCase{resp: &onChanged.Response{}}
	h := NewHandler(uc, logger.Nop())

	rec := serve(h, "owner-1", "owner-1", `{"id":"enq-1","kind":"enquiry","date":"2026-06-12","venue":"Riverside","status":"new"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.Engagement.StartTime)
	assert.Nil(t, uc.got.Engagement.EndTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		body     string
		ucErr    error
		wantCode int
	}{
		{"missing owner", "", validBody, nil, http.StatusUnauthorized},
		{"other owner", "owner-2", validBody, nil, http.StatusForbidden},
		{"bad json", "owner-1", `{`, nil, http.StatusBadRequest},
		{"bad date", "owner-1", `{"id":"x","kind":"booking","date":"12.06.2026","status":"new"}`, nil, http.StatusBadRequest},
		{"bad time", "owner-1", `{"id":"x","kind":"booking","date":"2026-06-12","startTime":"25:99","status":"new"}`, nil, http.StatusBadRequest},
		{"bad kind", "owner-1", `{"id":"x","kind":"gig","date":"2026-06-12","status":"new"}`, nil, http.StatusBadRequest},
		{"invalid input", "owner-1", validBody, fmt.Errorf("%w: id", onChanged.ErrInvalidInput), http.StatusBadRequest},
		{"source down", "owner-1", validBody, onChanged.ErrSourceUnavailable, http.StatusServiceUnavailable},
		{"persistence conflict", "owner-1", validBody, onChanged.ErrPersistenceConflict, http.StatusConflict},
		{"internal", "owner-1", validBody, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr, resp: &onChanged.Response{}}, logger.Nop())
			rec := serve(h, "owner-1", tt.caller, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
