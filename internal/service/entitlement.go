package service

import (
	"context"

	"github.com/flexprice/billing-engine/internal/domain/bundleapp"
	"github.com/flexprice/billing-engine/internal/domain/bundlemeterpolicy"
	"github.com/flexprice/billing-engine/internal/domain/contractoverride"
	"github.com/flexprice/billing-engine/internal/domain/team"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/types"
)

// EntitlementService implements resolveEntitlements of §4.E: the
// enterprise-contract-vs-subscription merge cascade that answers what a
// team may do on one app.
type EntitlementService interface {
	ResolveEntitlements(ctx context.Context, appID, teamID string) (*types.Entitlements, error)
	// RefreshEntitlements is the hook fired after a contract status change
	// or subscription webhook; a no-op in v1, its call sites are what
	// matters.
	RefreshEntitlements(ctx context.Context, teamID string) error
}

type entitlementService struct {
	ServiceParams
}

func NewEntitlementService(params ServiceParams) EntitlementService {
	return &entitlementService{ServiceParams: params}
}

func (s *entitlementService) ResolveEntitlements(ctx context.Context, appID, teamID string) (*types.Entitlements, error) {
	t, err := s.TeamRepo.Get(ctx, teamID)
	if err != nil {
		return nil, team.ErrNotFound(teamID)
	}

	billingEntity, err := s.BillingEntityRepo.GetByTeamID(ctx, t.ID)
	if err == nil {
		if ents, err := s.resolveEnterprise(ctx, appID, t, billingEntity.ID); err != nil {
			return nil, err
		} else if ents != nil {
			return ents, nil
		}
	}

	return s.resolveSubscription(ctx, appID, t)
}

// resolveEnterprise implements §4.E step 2. Returns nil, nil when no
// active contract exists, signalling the caller to fall through to the
// subscription path.
func (s *entitlementService) resolveEnterprise(ctx context.Context, appID string, t *team.Team, billToID string) (*types.Entitlements, error) {
	c, err := s.ContractRepo.GetActiveByBillToID(ctx, billToID)
	if err != nil {
		if ierr.Is(err, ierr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	bundleApp, err := s.BundleAppRepo.GetByBundleAndAppID(ctx, c.BundleID, appID)
	if err != nil {
		if ierr.Is(err, ierr.ErrNotFound) {
			defaults := types.DefaultEntitlements(t.BillingMode)
			return &defaults, nil
		}
		return nil, err
	}

	policies, err := s.BundleMeterPolicyRepo.ListByBundleAndAppID(ctx, c.BundleID, appID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.ContractOverrideRepo.ListByContractAndAppID(ctx, c.ID, appID)
	if err != nil {
		return nil, err
	}

	meters, err := mergeMeterPolicies(policies, overrides)
	if err != nil {
		return nil, err
	}

	features, err := mergeFeatureFlags(bundleApp, overrides)
	if err != nil {
		return nil, err
	}

	return &types.Entitlements{
		Features:    features,
		Meters:      meters,
		BillingMode: types.BillingModeEnterprise,
		Billable:    true,
	}, nil
}

// mergeMeterPolicies layers each ContractOverride over its matching
// BundleMeterPolicy, field by field, per §4.E. The key set is the union of
// both sources; keys present only in an override start from the NONE
// default.
func mergeMeterPolicies(policies []*bundlemeterpolicy.BundleMeterPolicy, overrides []*contractoverride.ContractOverride) (map[string]types.MeterPolicy, error) {
	result := make(map[string]types.MeterPolicy, len(policies))

	for _, p := range policies {
		result[p.MeterKey] = types.MeterPolicy{
			LimitType:      p.LimitType,
			IncludedAmount: p.IncludedAmount,
			Enforcement:    p.Enforcement,
			OverageBilling: p.OverageBilling,
		}
	}

	for _, o := range overrides {
		policy, ok := result[o.MeterKey]
		if !ok {
			def := bundlemeterpolicy.Default()
			policy = types.MeterPolicy{
				LimitType:      def.LimitType,
				IncludedAmount: def.IncludedAmount,
				Enforcement:    def.Enforcement,
				OverageBilling: def.OverageBilling,
			}
		}
		if o.LimitType != nil {
			policy.LimitType = *o.LimitType
		}
		if o.IncludedAmount != nil {
			policy.IncludedAmount = o.IncludedAmount
		}
		if o.Enforcement != nil {
			policy.Enforcement = *o.Enforcement
		}
		if o.OverageBilling != nil {
			policy.OverageBilling = *o.OverageBilling
		}
		result[o.MeterKey] = policy
	}

	return result, nil
}

// mergeFeatureFlags starts from the bundle app's defaults and lets each
// override's flags replace entries by key.
func mergeFeatureFlags(bundleApp *bundleapp.BundleApp, overrides []*contractoverride.ContractOverride) (map[string]bool, error) {
	flags, err := bundleApp.FeatureFlags()
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("decode bundle app feature flags").Mark(ierr.ErrSystem)
	}

	for _, o := range overrides {
		overrideFlags, err := o.Flags()
		if err != nil {
			return nil, ierr.WithError(err).WithMessage("decode contract override feature flags").Mark(ierr.ErrSystem)
		}
		for k, v := range overrideFlags {
			flags[k] = v
		}
	}

	return flags, nil
}

func (s *entitlementService) resolveSubscription(ctx context.Context, appID string, t *team.Team) (*types.Entitlements, error) {
	sub, err := s.TeamSubscriptionRepo.GetActiveByTeamAndAppID(ctx, t.ID, appID)
	if err != nil {
		defaults := types.DefaultEntitlements(t.BillingMode)
		return &defaults, nil
	}

	p, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}

	return &types.Entitlements{
		Features:    map[string]bool{},
		Meters:      map[string]types.MeterPolicy{},
		BillingMode: t.BillingMode,
		Billable:    true,
		PlanCode:    &p.Code,
		PlanName:    &p.Name,
	}, nil
}

// RefreshEntitlements is a no-op in v1; call sites after contract status
// transitions and subscription webhooks are the testable property, not
// the body.
func (s *entitlementService) RefreshEntitlements(ctx context.Context, teamID string) error {
	return nil
}
