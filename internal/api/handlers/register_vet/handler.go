package register_vet

import (
	"errors"
	"net/http"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/service/vets"
	"github.com/m04kA/VetBookingService/internal/service/vets/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/internal/vets
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/vets - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vet, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, vets.ErrInvalidInput) {
			h.logger.Warn("POST /internal/vets - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /internal/vets - Failed to register vet: vet_id=%d, error=%v", req.VetID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/vets - Vet registered: vet_id=%d", vet.ID)
	handlers.RespondJSON(w, http.StatusOK, vet)
}
