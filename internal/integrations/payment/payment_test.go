package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"
)

const testWebhookSecret = "whsec_test_secret"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newStripeGateway() *StripeGateway {
	return NewStripeGateway(StripeConfig{
		SecretKey:        "sk_test_unused",
		WebhookSecret:    testWebhookSecret,
		WebhookTolerance: 5 * time.Minute,
		Currency:         "usd",
		SuccessURL:       "https://vet.example.com/paid",
		CancelURL:        "https://vet.example.com/cancelled",
	}, nopLogger{})
}

func signedEvent(t *testing.T, eventType, paymentStatus string, appointmentID uuid.UUID) ([]byte, string) {
	t.Helper()
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"type": %q,
		"data": {"object": {
			"id": "cs_test_42",
			"object": "checkout.session",
			"payment_status": %q,
			"client_reference_id": %q,
			"metadata": {"appointment_id": %q}
		}}
	}`, eventType, paymentStatus, appointmentID.String(), appointmentID.String()))

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
		Scheme:    "v1",
	})
	return signed.Payload, signed.Header
}

func TestStripeWebhookCompleted(t *testing.T) {
	g := newStripeGateway()
	id := uuid.New()
	payload, header := signedEvent(t, "checkout.session.completed", "paid", id)

	evt, err := g.ParseWebhook(payload, header)

	require.NoError(t, err)
	assert.Equal(t, EventPaid, evt.Kind)
	assert.Equal(t, id, evt.AppointmentID)
	assert.Equal(t, "cs_test_42", evt.Reference)
}

func TestStripeWebhookExpired(t *testing.T) {
	g := newStripeGateway()
	id := uuid.New()
	payload, header := signedEvent(t, "checkout.session.expired", "unpaid", id)

	evt, err := g.ParseWebhook(payload, header)

	require.NoError(t, err)
	assert.Equal(t, EventExpired, evt.Kind)
}

func TestStripeWebhookUnpaidCompletionIgnored(t *testing.T) {
	g := newStripeGateway()
	payload, header := signedEvent(t, "checkout.session.completed", "unpaid", uuid.New())

	_, err := g.ParseWebhook(payload, header)
	assert.ErrorIs(t, err, ErrIgnoredEvent)
}

func TestStripeWebhookOtherEventIgnored(t *testing.T) {
	g := newStripeGateway()
	payload, header := signedEvent(t, "customer.created", "paid", uuid.New())

	_, err := g.ParseWebhook(payload, header)
	assert.ErrorIs(t, err, ErrIgnoredEvent)
}

func TestStripeWebhookBadSignature(t *testing.T) {
	g := newStripeGateway()
	payload, _ := signedEvent(t, "checkout.session.completed", "paid", uuid.New())

	_, err := g.ParseWebhook(payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = g.ParseWebhook(payload, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(4550), toMinorUnits(45.5))
	assert.Equal(t, int64(1999), toMinorUnits(19.99))
	assert.Equal(t, int64(0), toMinorUnits(0))
}

func TestWithAppointment(t *testing.T) {
	assert.Equal(t, "https://x/paid?appointment_id=abc", withAppointment("https://x/paid", "abc"))
	assert.Equal(t, "https://x/paid?a=1&appointment_id=abc", withAppointment("https://x/paid?a=1", "abc"))
}

func TestFakeGateway(t *testing.T) {
	g := NewFakeGateway("http://localhost:8080/fake-checkout", "local-secret", nopLogger{})
	id := uuid.New()

	checkout, err := g.CreateCheckout(context.Background(), CheckoutRequest{AppointmentID: id, Amount: 45})
	require.NoError(t, err)
	assert.Equal(t, "fake_"+id.String(), checkout.SessionID)
	assert.Equal(t, "http://localhost:8080/fake-checkout?appointment_id="+id.String(), checkout.URL)

	body := []byte(fmt.Sprintf(`{"type":"paid","appointmentId":%q}`, id.String()))
	evt, err := g.ParseWebhook(body, "local-secret")
	require.NoError(t, err)
	assert.Equal(t, EventPaid, evt.Kind)
	assert.Equal(t, checkout.SessionID, evt.Reference)

	_, err = g.ParseWebhook(body, "wrong")
	assert.True(t, errors.Is(err, ErrInvalidSignature))

	_, err = g.ParseWebhook([]byte(`{"type":"refunded","appointmentId":"x"}`), "local-secret")
	assert.ErrorIs(t, err, ErrIgnoredEvent)
}
