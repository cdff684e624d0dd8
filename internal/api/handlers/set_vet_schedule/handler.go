package set_vet_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/api/middleware"
	"github.com/m04kA/VetBookingService/internal/service/schedule"
	"github.com/m04kA/VetBookingService/internal/service/schedule/models"
)

const (
	msgInvalidVetID       = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgVetNotFound        = "врач не найден"
	msgForbidden          = "расписание может менять только сам врач"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/vets/{vetId}/schedule/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	vetID, err := handlers.PathInt64(r, "vetId")
	if err != nil {
		h.logger.Warn("PUT /vets/{id}/schedule/{weekday} - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	var req models.SetDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /vets/{id}/schedule/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.VetID = vetID
	req.Weekday = mux.Vars(r)["weekday"]

	day, err := h.service.SetDay(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /vets/{id}/schedule/{weekday} - Access denied: vet_id=%d, user_id=%d", vetID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidTemplate):
			h.logger.Warn("PUT /vets/{id}/schedule/{weekday} - Invalid template: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, schedule.ErrVetNotFound):
			h.logger.Warn("PUT /vets/{id}/schedule/{weekday} - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		default:
			h.logger.Error("PUT /vets/{id}/schedule/{weekday} - Failed to set schedule: vet_id=%d, error=%v", vetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /vets/{id}/schedule/{weekday} - Schedule updated: vet_id=%d, weekday=%s", vetID, day.Weekday)
	handlers.RespondJSON(w, http.StatusOK, day)
}
