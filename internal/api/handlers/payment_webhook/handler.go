package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/integrations/payment"
	"github.com/m04kA/VetBookingService/internal/service/appointments"
)

const (
	maxPayloadBytes = 1 << 20
	signatureHeader = "Stripe-Signature"

	msgInvalidPayload   = "некорректное тело события"
	msgInvalidSignature = "неверная подпись события"
)

// AckResponse подтверждение приема события
type AckResponse struct {
	Received bool `json:"received"`
}

type Handler struct {
	gateway Gateway
	service AppointmentService
	logger  Logger
}

func NewHandler(gateway Gateway, service AppointmentService, logger Logger) *Handler {
	return &Handler{
		gateway: gateway,
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Ответ не 2xx заставляет шлюз повторить доставку, поэтому 5xx только для временных ошибок
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	event, err := h.gateway.ParseWebhook(payload, r.Header.Get(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrIgnoredEvent):
			handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true})

		case errors.Is(err, payment.ErrInvalidSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		default:
			h.logger.Warn("POST /payments/webhook - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		}
		return
	}

	switch event.Kind {
	case payment.EventPaid:
		err = h.service.ConfirmPayment(r.Context(), event.AppointmentID, event.Reference)
	case payment.EventExpired:
		err = h.service.ExpirePayment(r.Context(), event.AppointmentID)
	}

	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /payments/webhook - Appointment not found: id=%s, event=%s", event.AppointmentID, event.Kind)

		case errors.Is(err, appointments.ErrInvalidTransition):
			// Оплата по отмененной записи: событие подтверждается, возврат делается вручную по reference
			h.logger.Error("POST /payments/webhook - Payment for inactive appointment, manual refund required: id=%s, reference=%s",
				event.AppointmentID, event.Reference)

		default:
			h.logger.Error("POST /payments/webhook - Failed to apply event: id=%s, event=%s, error=%v",
				event.AppointmentID, event.Kind, err)
			handlers.RespondInternalError(w)
			return
		}
	} else {
		h.logger.Info("POST /payments/webhook - Event applied: id=%s, event=%s", event.AppointmentID, event.Kind)
	}

	handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true})
}
