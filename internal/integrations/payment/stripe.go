package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	metadataAppointmentID = "appointment_id"
	metadataVetID         = "vet_id"
	metadataType          = "appointment_type"
)

// StripeConfig настройки Stripe Checkout
type StripeConfig struct {
	SecretKey        string
	WebhookSecret    string
	WebhookTolerance time.Duration
	Currency         string
	SuccessURL       string
	CancelURL        string
}

// StripeGateway платежный шлюз на Stripe Checkout
type StripeGateway struct {
	sessions checkoutsession.Client
	cfg      StripeConfig
	log      Logger
}

// NewStripeGateway создает шлюз со своим ключом (без глобального stripe.Key)
func NewStripeGateway(cfg StripeConfig, log Logger) *StripeGateway {
	return &StripeGateway{
		sessions: checkoutsession.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.SecretKey},
		cfg:      cfg,
		log:      log,
	}
}

// CreateCheckout создает разовую платежную сессию на стоимость приема.
// ID записи используется как ключ идемпотентности Stripe
func (g *StripeGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	appointmentID := req.AppointmentID.String()

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(withAppointment(g.cfg.SuccessURL, appointmentID)),
		CancelURL:         stripe.String(withAppointment(g.cfg.CancelURL, appointmentID)),
		ClientReferenceID: stripe.String(appointmentID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.cfg.Currency),
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			metadataAppointmentID: appointmentID,
			metadataVetID:         strconv.FormatInt(req.VetID, 10),
			metadataType:          req.AppointmentType,
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(appointmentID)

	sess, err := g.sessions.New(params)
	if err != nil {
		g.log.Error("Stripe: checkout session for appointment=%s failed: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	g.log.Info("Stripe: checkout session %s created for appointment=%s", sess.ID, appointmentID)
	return &Checkout{SessionID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook проверяет подпись и извлекает событие по записи.
// Обрабатываются checkout.session.completed (оплачено) и checkout.session.expired
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	if strings.TrimSpace(signature) == "" {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidSignature)
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret, webhook.ConstructEventOptions{
		Tolerance:                g.cfg.WebhookTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var kind EventKind
	switch evt.Type {
	case "checkout.session.completed":
		kind = EventPaid
	case "checkout.session.expired":
		kind = EventExpired
	default:
		return nil, fmt.Errorf("%w: %s", ErrIgnoredEvent, evt.Type)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: checkout session: %v", ErrInvalidPayload, err)
	}

	if kind == EventPaid && session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		// Отложенные способы оплаты присылают completed до фактического списания
		return nil, fmt.Errorf("%w: session %s payment status %s", ErrIgnoredEvent, session.ID, session.PaymentStatus)
	}

	rawID := session.Metadata[metadataAppointmentID]
	if rawID == "" {
		rawID = session.ClientReferenceID
	}
	appointmentID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment id %q: %v", ErrInvalidPayload, rawID, err)
	}

	return &Event{Kind: kind, AppointmentID: appointmentID, Reference: session.ID}, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func withAppointment(rawURL, appointmentID string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "appointment_id=" + appointmentID
}
