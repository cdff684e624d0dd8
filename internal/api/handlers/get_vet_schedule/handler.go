package get_vet_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/service/schedule"
)

const (
	msgInvalidVetID = "некорректный ID врача"
	msgVetNotFound  = "врач не найден"
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

// Handle GET /api/v1/vets/{vetId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vetID, err := handlers.PathInt64(r, "vetId")
	if err != nil {
		h.logger.Warn("GET /vets/{id}/schedule - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	template, err := h.service.GetTemplate(r.Context(), vetID)
	if err != nil {
		if errors.Is(err, schedule.ErrVetNotFound) {
			h.logger.Warn("GET /vets/{id}/schedule - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)
			return
		}
		h.logger.Error("GET /vets/{id}/schedule - Failed to get schedule: vet_id=%d, error=%v", vetID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, template)
}
