package stripeclient

import (
	"context"

	"github.com/flexprice/billing-engine/internal/config"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Client wraps the Stripe SDK for the checkout, webhook, and wallet
// auto-top-up flows of §4.C and §4.D. There is one app-wide Stripe account
// per deployment, so unlike the teacher's per-tenant connection lookup
// this resolves its key directly from config.
type Client struct {
	sdk           *stripe.Client
	webhookSecret string
}

func NewClient(cfg *config.Configuration) *Client {
	if cfg.Stripe.APIKey == "" {
		return nil
	}
	return &Client{
		sdk:           stripe.NewClient(cfg.Stripe.APIKey, nil),
		webhookSecret: cfg.Stripe.WebhookSecret,
	}
}

// CreateCustomer implements the external customer-create API call of §4.C
// step 4.
func (c *Client) CreateCustomer(ctx context.Context, name string, metadata map[string]string) (string, error) {
	params := &stripe.CustomerCreateParams{
		Name:     stripe.String(name),
		Metadata: metadata,
	}
	customer, err := c.sdk.V1Customers.Create(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).WithMessage("create stripe customer").Mark(ierr.ErrHTTPClient)
	}
	return customer.ID, nil
}

// CheckoutLineItem is one line of a checkout session's LineItems, built
// from a plan's StripeProductMap entries per §4.C step 3.
type CheckoutLineItem struct {
	StripePriceID string
	Quantity      int64
}

// CreateCheckoutSession implements createSubscriptionCheckout's external
// call of §4.C step 4.
func (c *Client) CreateCheckoutSession(ctx context.Context, customerID string, items []CheckoutLineItem, successURL, cancelURL string, metadata map[string]string) (url, sessionID string, err error) {
	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			Price:    stripe.String(item.StripePriceID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String("subscription"),
		Customer:   stripe.String(customerID),
		LineItems:  lineItems,
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Metadata:   metadata,
	}

	session, createErr := c.sdk.V1CheckoutSessions.Create(ctx, params)
	if createErr != nil {
		return "", "", ierr.WithError(createErr).WithMessage("create stripe checkout session").Mark(ierr.ErrHTTPClient)
	}
	return session.URL, session.ID, nil
}

// CreateTopUpCheckoutSession builds the payment-mode checkout session
// described at the end of §4.C: a single dynamically priced line item and
// payment_intent_data.metadata.type="wallet_topup" so the resulting
// payment_intent.succeeded webhook can be routed to a wallet credit.
func (c *Client) CreateTopUpCheckoutSession(ctx context.Context, customerID string, amountMinor int64, currency, successURL, cancelURL string, metadata map[string]string) (url, sessionID string, err error) {
	params := &stripe.CheckoutSessionCreateParams{
		Mode:     stripe.String("payment"),
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(amountMinor),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String("Wallet top-up"),
					},
				},
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Metadata:   metadata,
		PaymentIntentData: &stripe.CheckoutSessionCreatePaymentIntentDataParams{
			Metadata: map[string]string{"type": "wallet_topup"},
		},
	}

	session, createErr := c.sdk.V1CheckoutSessions.Create(ctx, params)
	if createErr != nil {
		return "", "", ierr.WithError(createErr).WithMessage("create stripe topup checkout session").Mark(ierr.ErrHTTPClient)
	}
	return session.URL, session.ID, nil
}

// CreatePaymentIntent implements checkAndTriggerAutoTopUp's non-interactive
// payment-intent issuance of §4.D.
func (c *Client) CreatePaymentIntent(ctx context.Context, customerID string, amountMinor int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:     stripe.Int64(amountMinor),
		Currency:   stripe.String(currency),
		Customer:   stripe.String(customerID),
		OffSession: stripe.Bool(true),
		Confirm:    stripe.Bool(true),
		Metadata:   metadata,
	}
	intent, err := c.sdk.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).WithMessage("create stripe payment intent").Mark(ierr.ErrHTTPClient)
	}
	return intent.ID, nil
}

// VerifyWebhookEvent validates the signature header against the raw body
// and returns the decoded event, per §4.W's WebhookSignatureError case.
func (c *Client) VerifyWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, c.webhookSecret)
	if err != nil {
		return stripe.Event{}, ierr.WithError(err).WithMessage("verify stripe webhook signature").Mark(ierr.ErrValidation)
	}
	return event, nil
}
