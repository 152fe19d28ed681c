package on_engagement_changed

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/gig-conflicts/internal/api/handlers"
	"github.com/m04kA/gig-conflicts/internal/api/middleware"
	onChanged "github.com/m04kA/gig-conflicts/internal/usecase/on_engagement_changed"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidKind        = "некорректный тип обязательства"
	msgInvalidInput       = "некорректные данные обязательства"
	msgMissingOwnerID     = "отсутствует ID владельца"
	msgForbidden          = "доступ запрещен"
	msgSourceUnavailable  = "сервис бронирований недоступен, повторите попытку позже"
	msgConcurrentUpdate   = "конфликты владельца одновременно пересчитываются, повторите попытку"
)

type Handler struct {
	useCase OnEngagementChangedUseCase
	logger  Logger
}

func NewHandler(useCase OnEngagementChangedUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/engagements/changed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerId"]

	callerID, ok := middleware.GetOwnerID(r.Context())
	if !ok {
		h.logger.Warn("POST /owners/{id}/engagements/changed - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingOwnerID)
		return
	}
	if callerID != ownerID {
		h.logger.Warn("POST /owners/{id}/engagements/changed - Access denied: owner=%s, caller=%s", ownerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req EngagementChangedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /owners/{id}/engagements/changed - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID)
	if err != nil {
		h.logger.Warn("POST /owners/{id}/engagements/changed - Failed to parse request: %v", err)
		switch {
		case errors.Is(err, errInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, errInvalidKind):
			handlers.RespondBadRequest(w, msgInvalidKind)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, onChanged.ErrInvalidInput):
			h.logger.Warn("POST /owners/{id}/engagements/changed - Invalid input: owner=%s, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, onChanged.ErrSourceUnavailable):
			h.logger.Warn("POST /owners/{id}/engagements/changed - Source unavailable: owner=%s, error=%v", ownerID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgSourceUnavailable)

		case errors.Is(err, onChanged.ErrPersistenceConflict):
			h.logger.Warn("POST /owners/{id}/engagements/changed - Concurrent reconciliation: owner=%s", ownerID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /owners/{id}/engagements/changed - Failed to reconcile: owner=%s, engagement=%s, error=%v",
				ownerID, req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /owners/{id}/engagements/changed - Reconciled: owner=%s, engagement=%s, active=%d",
		ownerID, req.ID, len(result.Active))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
