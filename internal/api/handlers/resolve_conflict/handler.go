package resolve_conflict

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	"github.com/m04kA/gig-conflicts/internal/service/conflicts"
)

const (
	msgInvalidConflictID  = "некорректный ID конфликта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidResolution  = "некорректное решение, ожидается accepted, declined или rescheduled"
	msgNotFound           = "конфликт не найден"
	msgAlreadyResolved    = "конфликт уже закрыт"
	msgMissingOwnerID     = "отсутствует ID владельца"
	msgForbidden          = "доступ запрещен"
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

// Handle PATCH /api/v1/conflicts/{conflictId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conflictID, err := strconv.ParseInt(mux.Vars(r)["conflictId"], 10, 64)
	if err != nil || conflictID <= 0 {
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Invalid conflict ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConflictID)
		return
	}

	callerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}

	var req ResolveConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Запись должна принадлежать вызывающему владельцу
	current, err := h.registry.GetByID(r.Context(), conflictID)
	if err != nil {
		h.respondRegistryError(w, conflictID, err)
		return
	}
	if current.OwnerID != callerID {
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Access denied: conflict_id=%d, caller=%s", conflictID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	resolved, err := h.registry.Resolve(r.Context(), conflictID, req.ToResolution(), req.Notes)
	if err != nil {
		h.respondRegistryError(w, conflictID, err)
		return
	}

	h.logger.Info("PATCH /conflicts/{id}/resolve - Conflict resolved: conflict_id=%d, resolution=%s",
		conflictID, req.Resolution)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromConflict(resolved))
}

func (h *Handler) respondRegistryError(w http.ResponseWriter, conflictID int64, err error) {
	switch {
	case errors.Is(err, conflicts.ErrInvalidInput):
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Invalid input: conflict_id=%d, error=%v", conflictID, err)
		handlers.RespondBadRequest(w, msgInvalidResolution)

	case errors.Is(err, conflicts.ErrConflictNotFound):
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Conflict not found: conflict_id=%d", conflictID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, conflicts.ErrAlreadyResolved):
		h.logger.Warn("PATCH /conflicts/{id}/resolve - Already resolved: conflict_id=%d", conflictID)
		handlers.RespondConflict(w, msgAlreadyResolved)

	default:
		h.logger.Error("PATCH /conflicts/{id}/resolve - Failed to resolve: conflict_id=%d, error=%v", conflictID, err)
		handlers.RespondInternalError(w)
	}
}
