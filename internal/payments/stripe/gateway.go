// Package stripe adapts the Stripe checkout-session API to the
// domain.PaymentGateway interface. Cent amounts computed by the pricing
// layer map directly onto Stripe unit amounts.
package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
)

// Config holds Stripe API settings.
type Config struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
	Currency  string `env:"STRIPE_CURRENCY" envDefault:"usd"`
}

// Gateway creates hosted checkout sessions with Stripe.
type Gateway struct {
	currency string
}

// NewGateway creates a Stripe payment gateway.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}

	stripe.Key = cfg.SecretKey

	return &Gateway{currency: cfg.Currency}, nil
}

// CreateSession creates a hosted checkout session for the given line
// items. The purchase ID rides along as the client reference so webhook
// events reconcile back to the purchase row.
func (g *Gateway) CreateSession(ctx context.Context, input domain.CheckoutSessionInput) (*domain.CheckoutSession, error) {
	if len(input.LineItems) == 0 {
		return nil, errors.New("checkout session requires at least one line item")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(input.SuccessURL),
		CancelURL:         stripe.String(input.CancelURL),
		ClientReferenceID: stripe.String(input.PurchaseID),
	}
	params.Context = ctx

	for _, item := range input.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(g.currency),
				UnitAmount: stripe.Int64(item.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe session: %w", err)
	}

	return &domain.CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}
