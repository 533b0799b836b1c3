package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/billablelineitem"
	"github.com/flexprice/billing-engine/internal/domain/ledgerentry"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/stripeclient"
	"github.com/flexprice/billing-engine/internal/types"
	"go.uber.org/zap"
)

// WalletDebiter implements §4.D: synchronous per-event debits for
// WALLET-mode teams, a daily batch sweep for anything missed, and the
// auto-top-up check that follows every debit.
type WalletDebiter interface {
	DebitImmediate(ctx context.Context, lineItemID string) error
	DebitBatch(ctx context.Context) error
	CheckAndTriggerAutoTopUp(ctx context.Context, appID, teamID string) error
}

type walletDebiter struct {
	ServiceParams
	Ledger LedgerService
	Stripe *stripeclient.Client
}

func NewWalletDebiter(params ServiceParams, ledger LedgerService, stripe *stripeclient.Client) WalletDebiter {
	return &walletDebiter{ServiceParams: params, Ledger: ledger, Stripe: stripe}
}

// DebitImmediate is invoked synchronously after a CUSTOMER line item is
// persisted for a WALLET-mode team, per §4.P.
func (s *walletDebiter) DebitImmediate(ctx context.Context, lineItemID string) error {
	item, err := s.BillableLineItemRepo.Get(ctx, lineItemID)
	if err != nil {
		return err
	}
	if item.WalletDebitedAt != nil {
		return nil
	}

	kind, err := s.BillableLineItemRepo.PriceBookKind(ctx, lineItemID)
	if err != nil {
		return err
	}
	if kind != string(types.PriceBookKindCustomer) {
		return nil
	}

	t, err := s.TeamRepo.Get(ctx, item.TeamID)
	if err != nil {
		return err
	}
	if t.BillingMode != types.BillingModeWallet {
		return nil
	}

	account, err := s.Ledger.GetOrCreateAccount(ctx, item.AppID, item.BillToID, types.LedgerAccountWallet)
	if err != nil {
		return err
	}

	entry := &ledgerentry.LedgerEntry{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixLedgerEntry),
		AppID:           item.AppID,
		BillToID:        item.BillToID,
		LedgerAccountID: account.ID,
		Type:            types.LedgerEntryUsageCharge,
		AmountMinor:     -item.AmountMinor,
		Currency:        item.Currency,
		ReferenceType:   types.LedgerReferenceUsageEvent,
		ReferenceID:     &item.UsageEventID,
		IdempotencyKey:  "wallet-debit:" + lineItemID,
		Timestamp:       time.Now().UTC(),
	}

	if _, err := s.Ledger.CreateEntry(ctx, types.LedgerAccountWallet, entry); err != nil {
		if !ierr.Is(err, ierr.ErrAlreadyExists) {
			return err
		}
	}

	if err := s.BillableLineItemRepo.MarkWalletDebited(ctx, []string{lineItemID}); err != nil {
		return err
	}

	return s.CheckAndTriggerAutoTopUp(ctx, item.AppID, item.TeamID)
}

// DebitBatch is the scheduled daily sweep of §4.D that catches anything
// DebitImmediate missed (WALLET mode toggled after the event, a prior
// run's crash between debit and mark).
func (s *walletDebiter) DebitBatch(ctx context.Context) error {
	items, err := s.BillableLineItemRepo.ListUndebited(ctx)
	if err != nil {
		return err
	}

	groups := make(map[string][]*billablelineitem.BillableLineItem)
	order := make([]string, 0)
	for _, item := range items {
		kind, err := s.BillableLineItemRepo.PriceBookKind(ctx, item.ID)
		if err != nil {
			s.Logger.With(zap.String("line_item_id", item.ID), zap.Error(err)).
				Error("failed to resolve price book kind for undebited line item")
			continue
		}
		if kind != string(types.PriceBookKindCustomer) {
			continue
		}
		key := item.TeamID + ":" + item.AppID
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}

	for _, key := range order {
		if err := s.debitGroup(ctx, groups[key]); err != nil {
			s.Logger.With(zap.String("group", key), zap.Error(err)).
				Error("wallet debit batch failed for group, continuing")
		}
	}
	return nil
}

func (s *walletDebiter) debitGroup(ctx context.Context, items []*billablelineitem.BillableLineItem) error {
	first := items[0]
	t, err := s.TeamRepo.Get(ctx, first.TeamID)
	if err != nil {
		return err
	}
	if t.BillingMode != types.BillingModeWallet {
		return nil
	}

	var total int64
	ids := make([]string, len(items))
	for i, item := range items {
		total += item.AmountMinor
		ids[i] = item.ID
	}
	sort.Strings(ids)

	account, err := s.Ledger.GetOrCreateAccount(ctx, first.AppID, first.BillToID, types.LedgerAccountWallet)
	if err != nil {
		return err
	}

	entry := &ledgerentry.LedgerEntry{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixLedgerEntry),
		AppID:           first.AppID,
		BillToID:        first.BillToID,
		LedgerAccountID: account.ID,
		Type:            types.LedgerEntryUsageCharge,
		AmountMinor:     -total,
		Currency:        first.Currency,
		ReferenceType:   types.LedgerReferenceManual,
		IdempotencyKey:  fmt.Sprintf("wallet-batch:%s:%s:%s", first.TeamID, first.AppID, strings.Join(ids, ",")),
		Timestamp:       time.Now().UTC(),
	}

	if _, err := s.Ledger.CreateEntry(ctx, types.LedgerAccountWallet, entry); err != nil {
		if !ierr.Is(err, ierr.ErrAlreadyExists) {
			return err
		}
	}

	if err := s.BillableLineItemRepo.MarkWalletDebited(ctx, ids); err != nil {
		return err
	}

	return s.CheckAndTriggerAutoTopUp(ctx, first.AppID, first.TeamID)
}

// CheckAndTriggerAutoTopUp issues a non-interactive payment intent when
// the team's wallet balance has dropped below its configured threshold.
func (s *walletDebiter) CheckAndTriggerAutoTopUp(ctx context.Context, appID, teamID string) error {
	cfg, err := s.WalletConfigRepo.Get(ctx, teamID, appID)
	if err != nil {
		return nil
	}
	if !cfg.AutoTopUpEnabled {
		return nil
	}

	t, err := s.TeamRepo.Get(ctx, teamID)
	if err != nil {
		return err
	}

	be, err := s.BillingEntityRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return err
	}

	balance, err := s.Ledger.GetBalance(ctx, appID, be.ID, types.LedgerAccountWallet)
	if err != nil {
		return err
	}
	if balance >= cfg.ThresholdMinor {
		return nil
	}

	if t.ExternalCustomerID == nil || t.IsExternalCustomerPending() {
		return ierr.NewErrorf("team %s has no external customer for auto top-up", teamID).
			Mark(ierr.ErrInvalidOperation)
	}

	if s.Stripe == nil {
		return nil
	}

	_, err = s.Stripe.CreatePaymentIntent(ctx, *t.ExternalCustomerID, cfg.TopUpAmountMinor, cfg.Currency, map[string]string{
		"type":    "wallet_topup",
		"trigger": "auto_topup",
	})
	return err
}
