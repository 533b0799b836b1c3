package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/invoice"
	"github.com/flexprice/billing-engine/internal/domain/invoicelineitem"
	"github.com/flexprice/billing-engine/internal/domain/ledgerentry"
	"github.com/flexprice/billing-engine/internal/domain/usageevent"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/types"
	"go.uber.org/zap"
)

// PeriodCloseResult tallies one runPeriodClose pass, per §4.V.
type PeriodCloseResult struct {
	Processed int
	Skipped   int
	Failed    int
}

// InvoiceService implements §4.V: period-bounds computation, usage
// aggregation, line-item construction by pricing mode, and the invoice
// lifecycle (issue, pay).
type InvoiceService interface {
	RunPeriodClose(ctx context.Context, asOf time.Time) (*PeriodCloseResult, error)
	MarkPaid(ctx context.Context, invoiceID string) (*invoice.Invoice, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) RunPeriodClose(ctx context.Context, asOf time.Time) (*PeriodCloseResult, error) {
	contracts, err := s.ContractRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &PeriodCloseResult{}
	for _, c := range contracts {
		since := c.StartsAt
		if latest, err := s.InvoiceRepo.GetLatestByContractID(ctx, c.ID); err == nil && latest != nil {
			since = latest.PeriodEnd
		}

		start, end, due := c.PeriodDue(since, asOf)
		if !due {
			continue
		}

		existing, err := s.InvoiceRepo.GetByPeriod(ctx, c.ID, start, end)
		if err != nil {
			s.Logger.With(zap.String("contract_id", c.ID), zap.Error(err)).
				Error("period close failed looking up existing invoice")
			result.Failed++
			continue
		}

		if existing != nil {
			if err := s.rewriteLedgerEntries(ctx, c.ID, existing); err != nil {
				s.Logger.With(zap.String("contract_id", c.ID), zap.Error(err)).
					Error("period close recovery failed rewriting ledger entries")
				result.Failed++
				continue
			}
			result.Skipped++
			continue
		}

		if err := s.closeContractPeriod(ctx, c.ID, c.BillToID, c.BundleID, c.Currency, c.PricingMode, c.TermsDays, start, end); err != nil {
			s.Logger.With(zap.String("contract_id", c.ID), zap.Error(err)).
				Error("period close failed")
			result.Failed++
			continue
		}
		result.Processed++
	}
	return result, nil
}

func (s *invoiceService) closeContractPeriod(ctx context.Context, contractID, billToID, bundleID, currency string, pricingMode types.PricingMode, termsDays int, start, end time.Time) error {
	usage, err := s.UsageEventRepo.AggregateUsage(ctx, billToID, start, end)
	if err != nil {
		return err
	}

	items, isDraft, err := s.buildLineItems(ctx, contractID, bundleID, pricingMode, usage)
	if err != nil {
		return err
	}

	var subtotal int64
	for _, it := range items {
		subtotal += it.AmountMinor
	}

	now := time.Now().UTC()
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoice),
		BillToID:      billToID,
		ContractID:    &contractID,
		PeriodStart:   start,
		PeriodEnd:     end,
		Status:        types.InvoiceStatusIssued,
		SubtotalMinor: subtotal,
		TaxMinor:      0,
		TotalMinor:    subtotal,
	}
	if isDraft {
		inv.Status = types.InvoiceStatusDraft
	} else {
		inv.IssuedAt = &now
		dueAt := now.AddDate(0, 0, termsDays)
		inv.DueAt = &dueAt
	}

	for _, it := range items {
		it.InvoiceID = inv.ID
	}

	if err := s.InvoiceRepo.CreateWithLineItems(ctx, inv, items); err != nil {
		return err
	}

	return s.rewriteLedgerEntries(ctx, contractID, inv)
}

// buildLineItems implements §4.V step 3's four pricingMode branches.
func (s *invoiceService) buildLineItems(ctx context.Context, contractID, bundleID string, mode types.PricingMode, usage []usageevent.UsageAggregate) (items []*invoicelineitem.InvoiceLineItem, isDraft bool, err error) {
	switch mode {
	case types.PricingModeFixed:
		items = append(items, baseFeeItem(0))
		return items, false, nil

	case types.PricingModeFixedPlusTrueup:
		items = append(items, baseFeeItem(0))
		for _, g := range usage {
			included, err := s.resolveIncluded(ctx, contractID, g.AppID, g.MeterKey)
			if err != nil {
				return nil, false, err
			}
			if g.TotalAmountMinor > included {
				items = append(items, trueupItem(g, g.TotalAmountMinor-included))
			}
		}
		return items, false, nil

	case types.PricingModeMinCommit:
		var total int64
		for _, g := range usage {
			total += g.TotalAmountMinor
		}
		items = append(items, baseFeeItem(total))
		for _, g := range usage {
			items = append(items, trueupItem(g, 0))
		}
		return items, false, nil

	case types.PricingModeCustomOnly:
		items = append(items, baseFeeItem(0))
		for _, g := range usage {
			items = append(items, trueupItem(g, g.TotalAmountMinor))
		}
		return items, true, nil

	default:
		return nil, false, ierr.NewErrorf("unknown pricing mode %s", mode).Mark(ierr.ErrSystem)
	}
}

func baseFeeItem(amountMinor int64) *invoicelineitem.InvoiceLineItem {
	return &invoicelineitem.InvoiceLineItem{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoiceLineItem),
		Type:           types.InvoiceLineItemBaseFee,
		Description:    "Base fee",
		Quantity:       1,
		UnitPriceMinor: amountMinor,
		AmountMinor:    amountMinor,
	}
}

func trueupItem(g usageevent.UsageAggregate, amountMinor int64) *invoicelineitem.InvoiceLineItem {
	appID := g.AppID
	summary, _ := json.Marshal(map[string]any{
		"meterKey":         g.MeterKey,
		"eventCount":       g.EventCount,
		"totalAmountMinor": g.TotalAmountMinor,
	})
	return &invoicelineitem.InvoiceLineItem{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoiceLineItem),
		AppID:          &appID,
		Type:           types.InvoiceLineItemUsageTrueup,
		Description:    fmt.Sprintf("Usage true-up: %s", g.MeterKey),
		Quantity:       int64(g.EventCount),
		UnitPriceMinor: 0,
		AmountMinor:    amountMinor,
		UsageSummary:   summary,
	}
}

// resolveIncluded resolves the included-amount for one (appId, meterKey)
// via ContractOverride → BundleMeterPolicy → 0, per §4.V step 3.
func (s *invoiceService) resolveIncluded(ctx context.Context, contractID, appID, meterKey string) (int64, error) {
	overrides, err := s.ContractOverrideRepo.ListByContractAndAppID(ctx, contractID, appID)
	if err != nil {
		return 0, err
	}
	for _, o := range overrides {
		if o.MeterKey == meterKey && o.IncludedAmount != nil {
			return *o.IncludedAmount, nil
		}
	}

	c, err := s.ContractRepo.Get(ctx, contractID)
	if err != nil {
		return 0, err
	}
	policies, err := s.BundleMeterPolicyRepo.ListByBundleAndAppID(ctx, c.BundleID, appID)
	if err != nil {
		return 0, err
	}
	for _, p := range policies {
		if p.MeterKey == meterKey && p.IncludedAmount != nil {
			return *p.IncludedAmount, nil
		}
	}
	return 0, nil
}

// rewriteLedgerEntries implements §4.V step 5 and the recovery path of
// runPeriodClose: one idempotent ledger entry per invoice line item,
// written outside the invoice's own transaction to keep it short.
func (s *invoiceService) rewriteLedgerEntries(ctx context.Context, contractID string, inv *invoice.Invoice) error {
	items, err := s.InvoiceRepo.ListLineItems(ctx, inv.ID)
	if err != nil {
		return err
	}

	c, err := s.ContractRepo.Get(ctx, contractID)
	if err != nil {
		return err
	}
	fallbackAppID := ""
	apps, err := s.BundleAppRepo.ListByBundleID(ctx, c.BundleID)
	if err == nil && len(apps) > 0 {
		fallbackAppID = apps[0].AppID
	}

	account, err := s.LedgerAccountRepo.GetOrCreate(ctx, fallbackAppID, inv.BillToID, types.LedgerAccountAR)
	if err != nil {
		return err
	}

	for i, item := range items {
		appID := fallbackAppID
		if item.AppID != nil {
			appID = *item.AppID
		}

		var entryType types.LedgerEntryType
		switch item.Type {
		case types.InvoiceLineItemBaseFee:
			entryType = types.LedgerEntrySubscriptionCharge
		case types.InvoiceLineItemUsageTrueup:
			entryType = types.LedgerEntryUsageCharge
		default:
			continue
		}

		entry := &ledgerentry.LedgerEntry{
			ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixLedgerEntry),
			AppID:           appID,
			BillToID:        inv.BillToID,
			LedgerAccountID: account.ID,
			Type:            entryType,
			AmountMinor:     item.AmountMinor,
			Currency:        "usd",
			ReferenceType:   types.LedgerReferenceManual,
			IdempotencyKey:  fmt.Sprintf("period-close:%s:%s:%d", contractID, inv.ID, i),
			Timestamp:       time.Now().UTC(),
		}
		if _, err := s.LedgerEntryRepo.Create(ctx, entry); err != nil && !ierr.Is(err, ierr.ErrAlreadyExists) {
			return err
		}
	}
	return nil
}

// MarkPaid implements §4.V's markPaid: ISSUED → PAID, already-PAID is
// idempotent.
func (s *invoiceService) MarkPaid(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == types.InvoiceStatusPaid {
		return inv, nil
	}

	account, err := s.LedgerAccountRepo.GetOrCreate(ctx, "", inv.BillToID, types.LedgerAccountAR)
	if err != nil {
		return nil, err
	}

	entry := &ledgerentry.LedgerEntry{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixLedgerEntry),
		BillToID:        inv.BillToID,
		LedgerAccountID: account.ID,
		Type:            types.LedgerEntryInvoicePayment,
		AmountMinor:     -inv.TotalMinor,
		Currency:        "usd",
		ReferenceType:   types.LedgerReferenceManual,
		IdempotencyKey:  "invoice-payment:" + invoiceID,
		Timestamp:       time.Now().UTC(),
	}
	if _, err := s.LedgerEntryRepo.Create(ctx, entry); err != nil && !ierr.Is(err, ierr.ErrAlreadyExists) {
		return nil, err
	}

	inv.Status = types.InvoiceStatusPaid
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
