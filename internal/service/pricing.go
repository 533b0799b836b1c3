package service

import (
	"context"
	"encoding/json"

	"github.com/flexprice/billing-engine/internal/domain/billablelineitem"
	"github.com/flexprice/billing-engine/internal/domain/pricebook"
	"github.com/flexprice/billing-engine/internal/domain/pricerule"
	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/types"
)

// PricingEngine prices one persisted UsageEvent into a COGS and a CUSTOMER
// BillableLineItem, per §4.P.
type PricingEngine interface {
	PriceEvent(ctx context.Context, event *usageevent.UsageEvent) (cogs, customer *billablelineitem.BillableLineItem, err error)
}

type pricingEngine struct {
	ServiceParams
	WalletDebiter WalletDebiter
}

func NewPricingEngine(params ServiceParams, walletDebiter WalletDebiter) PricingEngine {
	return &pricingEngine{ServiceParams: params, WalletDebiter: walletDebiter}
}

func (s *pricingEngine) PriceEvent(ctx context.Context, event *usageevent.UsageEvent) (*billablelineitem.BillableLineItem, *billablelineitem.BillableLineItem, error) {
	payload, err := event.PayloadMap()
	if err != nil {
		return nil, nil, ierr.WithError(err).WithMessage("decode event payload").Mark(ierr.ErrValidation)
	}

	cogs, err := s.priceOneKind(ctx, event, payload, types.PriceBookKindCOGS)
	if err != nil {
		return nil, nil, err
	}

	customer, err := s.priceOneKind(ctx, event, payload, types.PriceBookKindCustomer)
	if err != nil {
		return nil, nil, err
	}

	if err := s.BillableLineItemRepo.CreatePair(ctx, cogs, customer); err != nil {
		return nil, nil, err
	}

	// If the team bills on WALLET mode, the CUSTOMER line item is charged
	// against the wallet immediately rather than waiting for period close.
	t, err := s.TeamRepo.Get(ctx, event.TeamID)
	if err != nil {
		return nil, nil, err
	}
	if t.BillingMode == types.BillingModeWallet {
		if err := s.WalletDebiter.DebitImmediate(ctx, customer.ID); err != nil {
			s.Logger.With("line_item_id", customer.ID, "error", err).
				Error("failed to debit wallet immediately for priced event")
		}
	}

	return cogs, customer, nil
}

// priceOneKind performs book selection, rule matching, and rule
// evaluation for one PriceBookKind, per §4.P steps 1-4.
func (s *pricingEngine) priceOneKind(ctx context.Context, event *usageevent.UsageEvent, payload map[string]any, kind types.PriceBookKind) (*billablelineitem.BillableLineItem, error) {
	book, err := s.PriceBookRepo.Selected(ctx, event.AppID, kind, event.Timestamp)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, pricebook.ErrNoPriceBookFound(event.AppID, kind, event.Timestamp)
	}

	rules, err := s.PriceRuleRepo.ListByPriceBookID(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	var matched *pricerule.PriceRule
	for _, r := range rules {
		ok, err := r.Matches(event.EventType, payload)
		if err != nil {
			return nil, ierr.WithError(err).WithMessage("evaluate rule match").Mark(ierr.ErrSystem)
		}
		if ok {
			matched = r
			break
		}
	}
	if matched == nil {
		return nil, pricerule.ErrNoMatchingRule(book.ID, event.EventType)
	}

	amountMinor, snapshot, err := matched.Evaluation(payload)
	if err != nil {
		return nil, err
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("marshal inputs snapshot").Mark(ierr.ErrSystem)
	}

	return &billablelineitem.BillableLineItem{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixBillableLineItem),
		AppID:          event.AppID,
		TeamID:         event.TeamID,
		BillToID:       event.BillToID,
		UsageEventID:   event.ID,
		PriceBookID:    book.ID,
		PriceRuleID:    matched.ID,
		AmountMinor:    amountMinor,
		Currency:       book.Currency,
		InputsSnapshot: snapshotJSON,
	}, nil
}
