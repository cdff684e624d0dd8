package payment_webhook

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/VetBookingService/internal/integrations/payment"
)

type Gateway interface {
	ParseWebhook(payload []byte, signature string) (*payment.Event, error)
}

type AppointmentService interface {
	ConfirmPayment(ctx context.Context, id uuid.UUID, reference string) error
	ExpirePayment(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
