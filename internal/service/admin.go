package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/app"
	"github.com/flexprice/billing-engine/internal/domain/appsecret"
	"github.com/flexprice/billing-engine/internal/domain/bundle"
	"github.com/flexprice/billing-engine/internal/domain/bundleapp"
	"github.com/flexprice/billing-engine/internal/domain/bundlemeterpolicy"
	"github.com/flexprice/billing-engine/internal/domain/contract"
	"github.com/flexprice/billing-engine/internal/domain/contractoverride"
	"github.com/flexprice/billing-engine/internal/domain/invoice"
	"github.com/flexprice/billing-engine/internal/domain/invoicelineitem"
	"github.com/flexprice/billing-engine/internal/domain/plan"
	"github.com/flexprice/billing-engine/internal/domain/pricebook"
	"github.com/flexprice/billing-engine/internal/domain/pricerule"
	"github.com/flexprice/billing-engine/internal/domain/stripeproductmap"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/types"
)

// MintedSecret is returned once by the secret-mint endpoint; the plaintext
// secret is never persisted or retrievable again.
type MintedSecret struct {
	KID    string `json:"kid"`
	Secret string `json:"secret"`
}

// AdminService implements the admin-authenticated CRUD surface of §6:
// app/secret lifecycle, plan/bundle/contract/price book management, and
// on-demand invoice generation.
type AdminService interface {
	CreateApp(ctx context.Context, name string) (*app.App, error)
	MintAppSecret(ctx context.Context, appID string) (*MintedSecret, error)
	RevokeAppSecret(ctx context.Context, kid string) error

	CreatePlan(ctx context.Context, appID, code, name string) (*plan.Plan, error)
	AddStripeProductMap(ctx context.Context, planID string, kind types.StripeProductKind, stripeProductID, stripePriceID string) (*stripeproductmap.StripeProductMap, error)

	CreateBundle(ctx context.Context, name string) (*bundle.Bundle, error)
	AddBundleApp(ctx context.Context, bundleID, appID string, defaultFeatureFlags map[string]bool) (*bundleapp.BundleApp, error)
	AddBundleMeterPolicy(ctx context.Context, bundleID, appID, meterKey string, limitType types.LimitType, included *int64, enforcement types.Enforcement, overageBilling types.OverageBilling) (*bundlemeterpolicy.BundleMeterPolicy, error)

	CreateContract(ctx context.Context, billToID, bundleID string, currency string, period types.BillingPeriod, termsDays int, mode types.PricingMode, startsAt time.Time) (*contract.Contract, error)
	AddContractOverride(ctx context.Context, contractID, appID, meterKey string, override ContractOverrideInput) (*contractoverride.ContractOverride, error)

	CreatePriceBook(ctx context.Context, appID string, kind types.PriceBookKind, version int, currency string, effectiveFrom time.Time, effectiveTo *time.Time) (*pricebook.PriceBook, error)
	AddPriceRule(ctx context.Context, priceBookID string, priority int, match, rule []byte) (*pricerule.PriceRule, error)

	GenerateInvoice(ctx context.Context, contractID string, periodStart, periodEnd time.Time) (*invoice.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*invoice.Invoice, []*invoicelineitem.InvoiceLineItem, error)
}

// ContractOverrideInput carries the nullable override fields of §4.E's
// merge cascade; a nil field inherits the bundle default.
type ContractOverrideInput struct {
	LimitType      *types.LimitType
	IncludedAmount *int64
	Enforcement    *types.Enforcement
	OverageBilling *types.OverageBilling
	FeatureFlags   []byte
}

type adminService struct {
	ServiceParams
	PeriodClose InvoiceService
}

func NewAdminService(params ServiceParams, periodClose InvoiceService) AdminService {
	return &adminService{ServiceParams: params, PeriodClose: periodClose}
}

func (s *adminService) CreateApp(ctx context.Context, name string) (*app.App, error) {
	a := &app.App{
		ID:     types.GenerateUUIDWithPrefix(types.UUIDPrefixApp),
		Name:   name,
		Status: types.AppStatusActive,
	}
	if err := s.AppRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// MintAppSecret generates random key material, encrypts it at rest, and
// returns the plaintext exactly once, per §6.
func (s *adminService) MintAppSecret(ctx context.Context, appID string) (*MintedSecret, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, ierr.WithError(err).WithMessage("generate app secret material").Mark(ierr.ErrSystem)
	}
	plaintext := hex.EncodeToString(raw)

	ciphertext, err := s.Encryption.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}

	secret := &appsecret.AppSecret{
		KID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixAppSecret),
		AppID:            appID,
		SecretCiphertext: ciphertext,
		Status:           types.AppSecretStatusActive,
	}
	if err := s.AppSecretRepo.Create(ctx, secret); err != nil {
		return nil, err
	}

	return &MintedSecret{KID: secret.KID, Secret: plaintext}, nil
}

func (s *adminService) RevokeAppSecret(ctx context.Context, kid string) error {
	return s.AppSecretRepo.Revoke(ctx, kid)
}

func (s *adminService) CreatePlan(ctx context.Context, appID, code, name string) (*plan.Plan, error) {
	p := &plan.Plan{
		ID:    types.GenerateUUIDWithPrefix(types.UUIDPrefixPlan),
		AppID: appID,
		Code:  code,
		Name:  name,
	}
	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *adminService) AddStripeProductMap(ctx context.Context, planID string, kind types.StripeProductKind, stripeProductID, stripePriceID string) (*stripeproductmap.StripeProductMap, error) {
	m := &stripeproductmap.StripeProductMap{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixStripeProductMap),
		PlanID:          planID,
		Kind:            kind,
		StripeProductID: stripeProductID,
		StripePriceID:   stripePriceID,
	}
	if err := s.StripeProductMapRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *adminService) CreateBundle(ctx context.Context, name string) (*bundle.Bundle, error) {
	b := &bundle.Bundle{ID: types.GenerateUUIDWithPrefix(types.UUIDPrefixBundle), Name: name}
	if err := s.BundleRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *adminService) AddBundleApp(ctx context.Context, bundleID, appID string, defaultFeatureFlags map[string]bool) (*bundleapp.BundleApp, error) {
	flagsJSON, err := marshalFlags(defaultFeatureFlags)
	if err != nil {
		return nil, err
	}
	ba := &bundleapp.BundleApp{
		ID:                  types.GenerateUUIDWithPrefix(types.UUIDPrefixBundleApp),
		BundleID:            bundleID,
		AppID:               appID,
		DefaultFeatureFlags: flagsJSON,
	}
	if err := s.BundleAppRepo.Create(ctx, ba); err != nil {
		return nil, err
	}
	return ba, nil
}

func (s *adminService) AddBundleMeterPolicy(ctx context.Context, bundleID, appID, meterKey string, limitType types.LimitType, included *int64, enforcement types.Enforcement, overageBilling types.OverageBilling) (*bundlemeterpolicy.BundleMeterPolicy, error) {
	p := &bundlemeterpolicy.BundleMeterPolicy{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixBundleMeterPolicy),
		BundleID:       bundleID,
		AppID:          appID,
		MeterKey:       meterKey,
		LimitType:      limitType,
		IncludedAmount: included,
		Enforcement:    enforcement,
		OverageBilling: overageBilling,
	}
	if err := s.BundleMeterPolicyRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *adminService) CreateContract(ctx context.Context, billToID, bundleID, currency string, period types.BillingPeriod, termsDays int, mode types.PricingMode, startsAt time.Time) (*contract.Contract, error) {
	c := &contract.Contract{
		ID:            types.GenerateUUIDWithPrefix(types.UUIDPrefixContract),
		BillToID:      billToID,
		BundleID:      bundleID,
		Status:        types.ContractStatusActive,
		Currency:      currency,
		BillingPeriod: period,
		TermsDays:     termsDays,
		PricingMode:   mode,
		StartsAt:      startsAt.UTC(),
	}
	if err := s.ContractRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *adminService) AddContractOverride(ctx context.Context, contractID, appID, meterKey string, override ContractOverrideInput) (*contractoverride.ContractOverride, error) {
	o := &contractoverride.ContractOverride{
		ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixContractOverride),
		ContractID:     contractID,
		AppID:          appID,
		MeterKey:       meterKey,
		LimitType:      override.LimitType,
		IncludedAmount: override.IncludedAmount,
		Enforcement:    override.Enforcement,
		OverageBilling: override.OverageBilling,
		FeatureFlags:   override.FeatureFlags,
	}
	if err := s.ContractOverrideRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *adminService) CreatePriceBook(ctx context.Context, appID string, kind types.PriceBookKind, version int, currency string, effectiveFrom time.Time, effectiveTo *time.Time) (*pricebook.PriceBook, error) {
	b := &pricebook.PriceBook{
		ID:            types.GenerateUUIDWithPrefix(types.UUIDPrefixPriceBook),
		AppID:         appID,
		Kind:          kind,
		Version:       version,
		Currency:      currency,
		EffectiveFrom: effectiveFrom.UTC(),
		EffectiveTo:   effectiveTo,
	}
	if err := s.PriceBookRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *adminService) AddPriceRule(ctx context.Context, priceBookID string, priority int, match, rule []byte) (*pricerule.PriceRule, error) {
	r := &pricerule.PriceRule{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixPriceRule),
		PriceBookID: priceBookID,
		Priority:    priority,
		Match:       match,
		Rule:        rule,
	}
	if err := s.PriceRuleRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GenerateInvoice is the on-demand invoice route of §6, idempotent per
// (contractId, periodStart, periodEnd) by delegating to the same
// closeContractPeriod recovery path the scheduled job uses.
func (s *adminService) GenerateInvoice(ctx context.Context, contractID string, periodStart, periodEnd time.Time) (*invoice.Invoice, error) {
	existing, err := s.InvoiceRepo.GetByPeriod(ctx, contractID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	c, err := s.ContractRepo.Get(ctx, contractID)
	if err != nil {
		return nil, err
	}

	closer, ok := s.PeriodClose.(*invoiceService)
	if !ok {
		return nil, ierr.NewErrorf("invoice service not wired for on-demand generation").Mark(ierr.ErrSystem)
	}
	if err := closer.closeContractPeriod(ctx, c.ID, c.BillToID, c.BundleID, c.Currency, c.PricingMode, c.TermsDays, periodStart, periodEnd); err != nil {
		return nil, err
	}

	return s.InvoiceRepo.GetByPeriod(ctx, contractID, periodStart, periodEnd)
}

func (s *adminService) GetInvoice(ctx context.Context, invoiceID string) (*invoice.Invoice, []*invoicelineitem.InvoiceLineItem, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.InvoiceRepo.ListLineItems(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

func marshalFlags(flags map[string]bool) ([]byte, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(flags)
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("marshal feature flags").Mark(ierr.ErrValidation)
	}
	return b, nil
}
