package update_appointment_type

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/api/middleware"
	"github.com/m04kA/VetBookingService/internal/service/vets"
	"github.com/m04kA/VetBookingService/internal/service/vets/models"
)

const (
	msgInvalidVetID       = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgVetNotFound        = "врач не найден"
	msgForbidden          = "типы приема может менять только сам врач"
)

type Handler struct {
	service VetService
	logger  Logger
}

func NewHandler(service VetService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/vets/{vetId}/appointment-types/{type}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	vetID, err := handlers.PathInt64(r, "vetId")
	if err != nil {
		h.logger.Warn("PUT /vets/{id}/appointment-types/{type} - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	var req models.UpdateAppointmentTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /vets/{id}/appointment-types/{type} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.VetID = vetID
	req.Type = mux.Vars(r)["type"]

	setting, err := h.service.UpdateAppointmentType(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, vets.ErrAccessDenied):
			h.logger.Warn("PUT /vets/{id}/appointment-types/{type} - Access denied: vet_id=%d, user_id=%d", vetID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vets.ErrInvalidInput):
			h.logger.Warn("PUT /vets/{id}/appointment-types/{type} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, vets.ErrVetNotFound):
			h.logger.Warn("PUT /vets/{id}/appointment-types/{type} - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		default:
			h.logger.Error("PUT /vets/{id}/appointment-types/{type} - Failed to update: vet_id=%d, error=%v", vetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /vets/{id}/appointment-types/{type} - Updated: vet_id=%d, type=%s, enabled=%t",
		vetID, setting.Type, setting.Enabled)
	handlers.RespondJSON(w, http.StatusOK, setting)
}
