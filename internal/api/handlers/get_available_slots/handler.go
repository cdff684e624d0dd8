package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidVetID = "некорректный ID врача"
	msgMissingDate  = "не указана дата"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVetNotFound  = "врач не найден"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vets/{vetId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vetID, err := handlers.PathInt64(r, "vetId")
	if err != nil {
		h.logger.Warn("GET /vets/{id}/available-slots - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /vets/{id}/available-slots - Missing date: vet_id=%d", vetID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.ParseDate(rawDate)
	if err != nil {
		h.logger.Warn("GET /vets/{id}/available-slots - Invalid date=%s: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &get_available_slots.Request{VetID: vetID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrVetNotFound):
			h.logger.Warn("GET /vets/{id}/available-slots - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		case errors.Is(err, get_available_slots.ErrInvalidInput):
			h.logger.Warn("GET /vets/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /vets/{id}/available-slots - Failed to get slots: vet_id=%d, error=%v", vetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
