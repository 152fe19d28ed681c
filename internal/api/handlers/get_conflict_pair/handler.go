package get_conflict_pair

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	"github.com/m04kA/gig-conflicts/internal/service/conflicts"
)

const (
	msgInvalidPair    = "необходимо указать два разных ID обязательств (a и b)"
	msgNotFound       = "конфликт не найден"
	msgMissingOwnerID = "отсутствует ID владельца"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	registry ConflictRegistry
	logger   Logger
}

func NewHandler(registry ConflictRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/conflicts/pair?a={engagementId}&b={engagementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	callerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("GET /owners/{id}/conflicts/pair - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}
	if callerID != ownerID {
		h.logger.Warn("GET /owners/{id}/conflicts/pair - Access denied: owner=%s, caller=%s", ownerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	q := r.URL.Query()
	a, b := q.Get("a"), q.Get("b")

	record, err := h.registry.GetByPair(r.Context(), ownerID, a, b)
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrInvalidInput):
			h.logger.Warn("GET /owners/{id}/conflicts/pair - Invalid pair: a=%q, b=%q", a, b)
			handlers.RespondBadRequest(w, msgInvalidPair)

		case errors.Is(err, conflicts.ErrConflictNotFound):
			h.logger.Warn("GET /owners/{id}/conflicts/pair - Conflict not found: owner=%s, a=%s, b=%s", ownerID, a, b)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /owners/{id}/conflicts/pair - Failed to get conflict: owner=%s, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{id}/conflicts/pair - Conflict retrieved: conflict_id=%d", record.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromConflict(record))
}
