package remove_engagement

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	onRemoved "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_removed"
)

const (
	msgInvalidInput   = "некорректный ID обязательства"
	msgMissingOwnerID = "отсутствует ID владельца"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	useCase OnEngagementRemovedUseCase
	logger  Logger
}

func NewHandler(useCase OnEngagementRemovedUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/owners/{ownerId}/engagements/{engagementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID := vars["ownerId"]
	engagementID := vars["engagementId"]

	callerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /owners/{id}/engagements/{id} - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}
	if callerID != ownerID {
		h.logger.Warn("DELETE /owners/{id}/engagements/{id} - Access denied: owner=%s, caller=%s", ownerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &onRemoved.Request{OwnerID: ownerID, EngagementID: engagementID})
	if err != nil {
		switch {
		case errors.Is(err, onRemoved.ErrInvalidInput):
			h.logger.Warn("DELETE /owners/{id}/engagements/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("DELETE /owners/{id}/engagements/{id} - Failed to purge: owner=%s, engagement=%s, error=%v",
				ownerID, engagementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /owners/{id}/engagements/{id} - Conflicts purged: owner=%s, engagement=%s, removed=%d",
		ownerID, engagementID, result.Removed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
