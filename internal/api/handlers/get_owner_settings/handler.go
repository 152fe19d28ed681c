package get_owner_settings

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
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	callerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("GET /owners/{id}/settings - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}
	if callerID != ownerID {
		h.logger.Warn("GET /owners/{id}/settings - Access denied: owner=%s, caller=%s", ownerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.Get(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /owners/{id}/settings - Failed to get settings: owner=%s, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/{id}/settings - Settings retrieved: owner=%s, default=%t", ownerID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
