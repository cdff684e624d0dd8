package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/api/middleware"
	"github.com/m04kA/VetBookingService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVetNotFound           = "врач не найден"
	msgInvalidSlot           = "выбранное время недоступно для записи"
	msgServiceUnavailable    = "врач не принимает этот тип приема"
	msgSlotTaken             = "слот только что заняли, выберите другое время"
	msgPaymentUnavailable    = "платежный сервис недоступен, попробуйте позже"
	reasonInvalidSlot        = "invalid_slot"
	reasonServiceUnavailable = "service_unavailable"
	reasonSlotTaken          = "slot_taken"
	reasonPaymentUnavailable = "payment_unavailable"
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

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date=%s: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, book_appointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, book_appointment.ErrVetNotFound):
			h.logger.Warn("POST /appointments - Vet not found: vet_id=%d", req.VetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		case errors.Is(err, book_appointment.ErrInvalidSlot):
			h.logger.Warn("POST /appointments - Invalid slot: vet_id=%d, date=%s, time=%s", req.VetID, req.Date, req.StartTime)
			handlers.RespondErrorReason(w, http.StatusUnprocessableEntity, reasonInvalidSlot, msgInvalidSlot)

		case errors.Is(err, book_appointment.ErrServiceUnavailable):
			h.logger.Warn("POST /appointments - Type unavailable: vet_id=%d, type=%s", req.VetID, req.AppointmentType)
			handlers.RespondErrorReason(w, http.StatusUnprocessableEntity, reasonServiceUnavailable, msgServiceUnavailable)

		case errors.Is(err, book_appointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: vet_id=%d, date=%s, time=%s", req.VetID, req.Date, req.StartTime)
			handlers.RespondErrorReason(w, http.StatusConflict, reasonSlotTaken, msgSlotTaken)

		case errors.Is(err, book_appointment.ErrPaymentUnavailable):
			h.logger.Error("POST /appointments - Payment unavailable: %v", err)
			handlers.RespondErrorReason(w, http.StatusBadGateway, reasonPaymentUnavailable, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to book: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, user_id=%d, vet_id=%d",
		result.Appointment.ID, userID, req.VetID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
