package service

import (
	"context"
	"strconv"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/team"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/stripeclient"
	"github.com/flexprice/billing-engine/internal/types"
)

const (
	claimPollInterval = 100 * time.Millisecond
	claimPollMaxTries  = 50
)

// CheckoutResult is createSubscriptionCheckout's and the top-up checkout's
// response shape, per §4.C step 5.
type CheckoutResult struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// CreateSubscriptionCheckoutRequest is the request body accepted by
// §6's `POST /v1/apps/:appId/teams/:teamId/checkout/subscription`.
type CreateSubscriptionCheckoutRequest struct {
	AppID      string
	TeamID     string
	PlanCode   string
	SuccessURL string
	CancelURL  string
	Seats      *int64
}

// CheckoutService implements §4.C: external-customer resolution and the
// Stripe checkout session flows built on top of it.
type CheckoutService interface {
	GetOrCreateExternalCustomer(ctx context.Context, teamID, appID string) (string, error)
	CreateSubscriptionCheckout(ctx context.Context, req CreateSubscriptionCheckoutRequest) (*CheckoutResult, error)
	CreateTopUpCheckout(ctx context.Context, appID, teamID string, amountMinor int64, currency, successURL, cancelURL string) (*CheckoutResult, error)
}

type checkoutService struct {
	ServiceParams
	Stripe *stripeclient.Client
}

func NewCheckoutService(params ServiceParams, stripe *stripeclient.Client) CheckoutService {
	return &checkoutService{ServiceParams: params, Stripe: stripe}
}

// GetOrCreateExternalCustomer implements §4.C's 5-step claim/poll flow: a
// real externalCustomerId wins immediately, a NULL one is claimed via
// compare-and-swap before calling out to Stripe, and a pending one already
// claimed by a concurrent request is polled rather than re-claimed.
func (s *checkoutService) GetOrCreateExternalCustomer(ctx context.Context, teamID, appID string) (string, error) {
	t, err := s.TeamRepo.Get(ctx, teamID)
	if err != nil {
		return "", err
	}

	if t.ExternalCustomerID != nil && !t.IsExternalCustomerPending() {
		return *t.ExternalCustomerID, nil
	}

	if t.ExternalCustomerID != nil && t.IsExternalCustomerPending() {
		return s.pollForExternalCustomer(ctx, teamID)
	}

	pendingID := team.PendingExternalCustomerPrefix + teamID
	claimed, err := s.TeamRepo.ClaimExternalCustomer(ctx, teamID, pendingID)
	if err != nil {
		return "", err
	}
	if !claimed {
		return s.pollForExternalCustomer(ctx, teamID)
	}

	if s.Stripe == nil {
		_ = s.TeamRepo.RollbackExternalCustomerClaim(ctx, teamID, pendingID)
		return "", ierr.NewErrorf("stripe is not configured").Mark(ierr.ErrSystem)
	}

	metadata := map[string]string{"teamId": teamID}
	if appID != "" {
		metadata["appId"] = appID
	}
	customerID, err := s.Stripe.CreateCustomer(ctx, t.Name, metadata)
	if err != nil {
		_ = s.TeamRepo.RollbackExternalCustomerClaim(ctx, teamID, pendingID)
		return "", err
	}

	if err := s.TeamRepo.SetExternalCustomer(ctx, teamID, customerID); err != nil {
		return "", err
	}
	return customerID, nil
}

func (s *checkoutService) pollForExternalCustomer(ctx context.Context, teamID string) (string, error) {
	for i := 0; i < claimPollMaxTries; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(claimPollInterval):
		}

		t, err := s.TeamRepo.Get(ctx, teamID)
		if err != nil {
			return "", err
		}
		if t.ExternalCustomerID == nil {
			// The claim we were waiting on rolled back; retry the whole
			// flow from scratch.
			return s.GetOrCreateExternalCustomer(ctx, teamID, "")
		}
		if !t.IsExternalCustomerPending() {
			return *t.ExternalCustomerID, nil
		}
	}
	return "", ierr.NewErrorf("timed out waiting for external customer claim on team %s", teamID).
		Mark(ierr.ErrSystem)
}

// CreateSubscriptionCheckout implements §4.C's five-step checkout flow.
func (s *checkoutService) CreateSubscriptionCheckout(ctx context.Context, req CreateSubscriptionCheckoutRequest) (*CheckoutResult, error) {
	p, err := s.PlanRepo.GetByCode(ctx, req.AppID, req.PlanCode)
	if err != nil {
		return nil, err
	}

	customerID, err := s.GetOrCreateExternalCustomer(ctx, req.TeamID, req.AppID)
	if err != nil {
		return nil, err
	}

	maps, err := s.StripeProductMapRepo.ListByPlanID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	seats := int64(1)
	if req.Seats != nil {
		seats = *req.Seats
	}

	lineItems := make([]stripeclient.CheckoutLineItem, 0, len(maps))
	for _, m := range maps {
		switch m.Kind {
		case types.StripeProductKindBase:
			lineItems = append(lineItems, stripeclient.CheckoutLineItem{StripePriceID: m.StripePriceID, Quantity: 1})
		case types.StripeProductKindSeat:
			lineItems = append(lineItems, stripeclient.CheckoutLineItem{StripePriceID: m.StripePriceID, Quantity: seats})
		}
	}

	if s.Stripe == nil {
		return nil, ierr.NewErrorf("stripe is not configured").Mark(ierr.ErrSystem)
	}

	url, sessionID, err := s.Stripe.CreateCheckoutSession(ctx, customerID, lineItems, req.SuccessURL, req.CancelURL, map[string]string{
		"teamId": req.TeamID,
		"appId":  req.AppID,
		"planId": p.ID,
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{URL: url, SessionID: sessionID}, nil
}

// CreateTopUpCheckout builds the payment-mode variant described at the end
// of §4.C: same session shape, dynamically priced line item, and a
// payment_intent_data.metadata.type of "wallet_topup".
func (s *checkoutService) CreateTopUpCheckout(ctx context.Context, appID, teamID string, amountMinor int64, currency, successURL, cancelURL string) (*CheckoutResult, error) {
	customerID, err := s.GetOrCreateExternalCustomer(ctx, teamID, appID)
	if err != nil {
		return nil, err
	}
	if s.Stripe == nil {
		return nil, ierr.NewErrorf("stripe is not configured").Mark(ierr.ErrSystem)
	}

	url, sessionID, err := s.Stripe.CreateTopUpCheckoutSession(ctx, customerID, amountMinor, currency, successURL, cancelURL, map[string]string{
		"teamId": teamID,
		"appId":  appID,
		"amount": strconv.FormatInt(amountMinor, 10),
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{URL: url, SessionID: sessionID}, nil
}
