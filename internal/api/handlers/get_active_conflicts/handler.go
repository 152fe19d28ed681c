package get_active_conflicts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
)

const (
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

// Handle GET /api/v1/owners/{ownerId}/conflicts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	callerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("GET /owners/{id}/conflicts - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}
	if callerID != ownerID {
		h.logger.Warn("GET /owners/{id}/conflicts - Access denied: owner=%s, caller=%s", ownerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	records, err := h.registry.ListActive(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /owners/{id}/conflicts - Failed to list conflicts: owner=%s, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/{id}/conflicts - Conflicts retrieved: owner=%s, count=%d", ownerID, len(records))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromActiveConflicts(records))
}
