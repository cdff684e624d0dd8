package payment

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// FakeGateway шлюз для локального окружения: ничего не списывает,
// а подтверждение оплаты присылается вручную на webhook
type FakeGateway struct {
	checkoutURL string
	secret      string
	log         Logger
}

// NewFakeGateway создает фейковый шлюз. Webhook принимается, если
// заголовок подписи совпадает с secret
func NewFakeGateway(checkoutURL, secret string, log Logger) *FakeGateway {
	return &FakeGateway{checkoutURL: checkoutURL, secret: secret, log: log}
}

// CreateCheckout возвращает локальную ссылку на оплату
func (g *FakeGateway) CreateCheckout(_ context.Context, req CheckoutRequest) (*Checkout, error) {
	id := req.AppointmentID.String()
	g.log.Info("FakePayment: checkout for appointment=%s amount=%.2f", id, req.Amount)
	return &Checkout{
		SessionID: "fake_" + id,
		URL:       withAppointment(g.checkoutURL, id),
	}, nil
}

type fakeEvent struct {
	Type          string `json:"type"`
	AppointmentID string `json:"appointmentId"`
	Reference     string `json:"reference"`
}

// ParseWebhook разбирает событие вида {"type":"paid","appointmentId":"...","reference":"..."}
func (g *FakeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	if subtle.ConstantTimeCompare([]byte(signature), []byte(g.secret)) != 1 {
		return nil, ErrInvalidSignature
	}

	var evt fakeEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	kind := EventKind(evt.Type)
	if kind != EventPaid && kind != EventExpired {
		return nil, fmt.Errorf("%w: %s", ErrIgnoredEvent, evt.Type)
	}

	id, err := uuid.Parse(evt.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment id: %v", ErrInvalidPayload, err)
	}

	reference := evt.Reference
	if reference == "" {
		reference = "fake_" + id.String()
	}
	return &Event{Kind: kind, AppointmentID: id, Reference: reference}, nil
}
