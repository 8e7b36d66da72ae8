package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"minka/config"
	"minka/infras/otel"
	"minka/shared/constant"
)

const (
	// EventCheckoutCompleted is the Stripe event delivered once a guest
	// finishes paying for a checkout session.
	EventCheckoutCompleted = "checkout.session.completed"

	currencyJPY = "jpy"
)

// CheckoutInput describes a single payment to collect for a stay.
type CheckoutInput struct {
	Description string
	Amount      int64
	Metadata    map[string]string
}

// CheckoutSession is the hosted payment page created for a reservation.
type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookEvent is a verified event pushed by the payment provider.
type WebhookEvent struct {
	Type      string
	SessionID string
	Metadata  map[string]string
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, input CheckoutInput) (*CheckoutSession, error)
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

type stripeGateway struct {
	api    *client.API
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otl otel.Otel) Gateway {
	api := &client.API{}
	api.Init(config.Payment.Stripe.SecretKey, nil)

	log.Info().Msg("Stripe payment gateway initialized")

	return &stripeGateway{
		api:    api,
		config: config,
		otel:   otl,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, input CheckoutInput) (sess *CheckoutSession, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreateCheckoutSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("amount", int(input.Amount))

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context:  ctx,
			Metadata: input.Metadata,
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.config.Payment.Stripe.SuccessURL),
		CancelURL:  stripe.String(g.config.Payment.Stripe.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currencyJPY),
					UnitAmount: stripe.Int64(input.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(input.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	created, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create checkout session")

		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSession{
		ID:  created.ID,
		URL: created.URL,
	}, nil
}

func (g *stripeGateway) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.config.Payment.Stripe.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	result := &WebhookEvent{
		Type: string(event.Type),
	}

	if result.Type != EventCheckoutCompleted {
		return result, nil
	}

	var session stripe.CheckoutSession

	err = json.Unmarshal(event.Data.Raw, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to decode checkout session from event: %w", err)
	}

	result.SessionID = session.ID
	result.Metadata = session.Metadata

	return result, nil
}
