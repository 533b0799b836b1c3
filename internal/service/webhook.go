package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/ledgerentry"
	"github.com/flexprice/billing-engine/internal/domain/teamsubscription"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/stripeclient"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// WebhookReconciler implements §4.W: Stripe event verification, dedup, and
// routing to the ledger/subscription/entitlement side effects.
type WebhookReconciler interface {
	HandleEvent(ctx context.Context, rawBody []byte, signatureHeader string) error
}

type webhookReconciler struct {
	ServiceParams
	Stripe      *stripeclient.Client
	Entitlement EntitlementService
}

func NewWebhookReconciler(params ServiceParams, stripe *stripeclient.Client, entitlement EntitlementService) WebhookReconciler {
	return &webhookReconciler{ServiceParams: params, Stripe: stripe, Entitlement: entitlement}
}

func (s *webhookReconciler) HandleEvent(ctx context.Context, rawBody []byte, signatureHeader string) error {
	event, err := s.Stripe.VerifyWebhookEvent(rawBody, signatureHeader)
	if err != nil {
		return err
	}

	recorded, err := s.WebhookEventRepo.Record(ctx, event.ID, string(event.Type))
	if err != nil {
		return err
	}
	if !recorded {
		s.Logger.With(zap.String("event_id", event.ID)).Debug("duplicate stripe webhook event, swallowing")
		return nil
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.updated":
		return s.handleSubscriptionUpdated(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	case "invoice.paid":
		return s.handleInvoicePaid(ctx, event)
	case "invoice.payment_failed":
		return s.handleInvoicePaymentFailed(ctx, event)
	case "payment_intent.succeeded":
		return s.handlePaymentIntentSucceeded(ctx, event)
	default:
		return nil
	}
}

func (s *webhookReconciler) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := decodeEventData(event, &session); err != nil {
		return err
	}
	if session.Mode != stripe.CheckoutSessionModeSubscription {
		return nil
	}

	teamID := session.Metadata["teamId"]
	planID := session.Metadata["planId"]

	var seats int64 = 1
	if len(session.LineItems.Data) > 0 {
		seats = 0
		for _, item := range session.LineItems.Data {
			seats += item.Quantity
		}
	}

	now := time.Now().UTC()
	sub := &teamsubscription.TeamSubscription{
		ID:                   types.GenerateUUIDWithPrefix(types.UUIDPrefixTeamSubscription),
		TeamID:               teamID,
		PlanID:               planID,
		StripeSubscriptionID: session.Subscription.ID,
		Status:               types.TeamSubscriptionStatusActive,
		CurrentPeriodStart:   now,
		CurrentPeriodEnd:     now.AddDate(0, 1, 0),
		SeatsQuantity:        int(seats),
	}
	if err := s.TeamSubscriptionRepo.Upsert(ctx, sub); err != nil {
		return err
	}

	if err := s.emitSubscriptionCharge(ctx, teamID, "checkout:"+event.ID, 0); err != nil {
		return err
	}

	return s.Entitlement.RefreshEntitlements(ctx, teamID)
}

func (s *webhookReconciler) handleSubscriptionUpdated(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := decodeEventData(event, &sub); err != nil {
		return err
	}

	existing, err := s.TeamSubscriptionRepo.GetByStripeSubscriptionID(ctx, sub.ID)
	if err != nil {
		return err
	}

	existing.Status = types.StripeStatusToTeamSubscriptionStatus(string(sub.Status))
	if len(sub.Items.Data) > 0 {
		existing.CurrentPeriodStart = time.Unix(sub.Items.Data[0].CurrentPeriodStart, 0).UTC()
		existing.CurrentPeriodEnd = time.Unix(sub.Items.Data[0].CurrentPeriodEnd, 0).UTC()
	}
	if err := s.TeamSubscriptionRepo.Upsert(ctx, existing); err != nil {
		return err
	}

	return s.Entitlement.RefreshEntitlements(ctx, existing.TeamID)
}

func (s *webhookReconciler) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := decodeEventData(event, &sub); err != nil {
		return err
	}

	existing, err := s.TeamSubscriptionRepo.GetByStripeSubscriptionID(ctx, sub.ID)
	if err != nil {
		return err
	}
	existing.Status = types.TeamSubscriptionStatusCanceled
	if err := s.TeamSubscriptionRepo.Upsert(ctx, existing); err != nil {
		return err
	}
	return s.Entitlement.RefreshEntitlements(ctx, existing.TeamID)
}

func (s *webhookReconciler) handleInvoicePaid(ctx context.Context, event stripe.Event) error {
	var inv stripe.Invoice
	if err := decodeEventData(event, &inv); err != nil {
		return err
	}
	if inv.Subscription == nil {
		return nil
	}

	sub, err := s.TeamSubscriptionRepo.GetByStripeSubscriptionID(ctx, inv.Subscription.ID)
	if err != nil {
		return err
	}

	return s.emitSubscriptionCharge(ctx, sub.TeamID, "invoice_paid:"+event.ID, inv.AmountPaid)
}

func (s *webhookReconciler) handleInvoicePaymentFailed(ctx context.Context, event stripe.Event) error {
	var inv stripe.Invoice
	if err := decodeEventData(event, &inv); err != nil {
		return err
	}
	if inv.Subscription == nil {
		return nil
	}

	sub, err := s.TeamSubscriptionRepo.GetByStripeSubscriptionID(ctx, inv.Subscription.ID)
	if err != nil {
		return err
	}

	t, err := s.TeamRepo.Get(ctx, sub.TeamID)
	if err != nil {
		return err
	}
	be, err := s.BillingEntityRepo.GetByTeamID(ctx, sub.TeamID)
	if err != nil {
		return err
	}
	account, err := s.LedgerAccountRepo.GetOrCreate(ctx, t.AppID, be.ID, types.LedgerAccountAR)
	if err != nil {
		return err
	}

	entry := &ledgerentry.LedgerEntry{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixLedgerEntry),
		AppID:           t.AppID,
		BillToID:        be.ID,
		LedgerAccountID: account.ID,
		Type:            types.LedgerEntryAdjustment,
		AmountMinor:     0,
		Currency:        t.DefaultCurrency,
		ReferenceType:   types.LedgerReferenceManual,
		IdempotencyKey:  "invoice_failed:" + event.ID,
		Timestamp:       time.Now().UTC(),
	}
	if _, err := s.LedgerEntryRepo.Create(ctx, entry); err != nil && !ierr.Is(err, ierr.ErrAlreadyExists) {
		return err
	}

	return s.Entitlement.RefreshEntitlements(ctx, sub.TeamID)
}

func (s *webhookReconciler) handlePaymentIntentSucceeded(ctx context.Context, event stripe.Event) error {
	var pi stripe.PaymentIntent
	if err := decodeEventData(event, &pi); err != nil {
		return err
	}
	if pi.Metadata["type"] != "wallet_topup" {
		return nil
	}

	teamID := pi.Metadata["teamId"]
	appID := pi.Metadata["appId"]

	be, err := s.BillingEntityRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return err
	}
	account, err := s.LedgerAccountRepo.GetOrCreate(ctx, appID, be.ID, types.LedgerAccountWallet)
	if err != nil {
		return err
	}

	entry := &ledgerentry.LedgerEntry{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixLedgerEntry),
		AppID:           appID,
		BillToID:        be.ID,
		LedgerAccountID: account.ID,
		Type:            types.LedgerEntryTopup,
		AmountMinor:     pi.Amount,
		Currency:        string(pi.Currency),
		ReferenceType:   types.LedgerReferencePaymentIntent,
		IdempotencyKey:  "topup:" + event.ID,
		Timestamp:       time.Now().UTC(),
	}
	if _, err := s.LedgerEntryRepo.Create(ctx, entry); err != nil && !ierr.Is(err, ierr.ErrAlreadyExists) {
		return err
	}
	return nil
}

func (s *webhookReconciler) emitSubscriptionCharge(ctx context.Context, teamID, idempotencyKey string, amountMinor int64) error {
	t, err := s.TeamRepo.Get(ctx, teamID)
	if err != nil {
		return err
	}
	be, err := s.BillingEntityRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return err
	}
	account, err := s.LedgerAccountRepo.GetOrCreate(ctx, t.AppID, be.ID, types.LedgerAccountAR)
	if err != nil {
		return err
	}

	entry := &ledgerentry.LedgerEntry{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixLedgerEntry),
		AppID:           t.AppID,
		BillToID:        be.ID,
		LedgerAccountID: account.ID,
		Type:            types.LedgerEntrySubscriptionCharge,
		AmountMinor:     amountMinor,
		Currency:        t.DefaultCurrency,
		ReferenceType:   types.LedgerReferenceManual,
		IdempotencyKey:  idempotencyKey,
		Timestamp:       time.Now().UTC(),
	}
	if _, err := s.LedgerEntryRepo.Create(ctx, entry); err != nil && !ierr.Is(err, ierr.ErrAlreadyExists) {
		return err
	}
	return nil
}

func decodeEventData(event stripe.Event, out any) error {
	if err := json.Unmarshal(event.Data.Raw, out); err != nil {
		return ierr.WithError(err).WithMessage("decode stripe event payload").Mark(ierr.ErrValidation)
	}
	return nil
}
