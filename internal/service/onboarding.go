package service

import (
	"context"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/billingentity"
	"github.com/flexprice/billing-engine/internal/domain/externalteamref"
	"github.com/flexprice/billing-engine/internal/domain/team"
	"github.com/flexprice/billing-engine/internal/domain/teammember"
	"github.com/flexprice/billing-engine/internal/domain/user"
	"github.com/flexprice/billing-engine/internal/types"
)

// CreateUserResult bundles the four rows created atomically by
// CreateUser, per §6's "Create User" route.
type CreateUserResult struct {
	User          *user.User
	PersonalTeam  *team.Team
	BillingEntity *billingentity.BillingEntity
	Member        *teammember.TeamMember
}

// CreateTeamRequest is the request body for §6's "Create Team" route.
type CreateTeamRequest struct {
	AppID           string
	Name            string
	DefaultCurrency string
	BillingMode     types.BillingMode
	ExternalTeamID  *string
}

// OnboardingService implements the user/team/membership creation routes
// of §6's HTTP surface.
type OnboardingService interface {
	// CreateUser creates a User + Personal Team + BillingEntity +
	// OWNER TeamMember idempotently on (appId, externalRef).
	CreateUser(ctx context.Context, appID, externalRef, email string) (*CreateUserResult, error)
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*team.Team, error)
	AddTeamMember(ctx context.Context, appID, teamID, externalRef, email string, role types.TeamMemberRole) (*teammember.TeamMember, error)
}

type onboardingService struct {
	ServiceParams
}

func NewOnboardingService(params ServiceParams) OnboardingService {
	return &onboardingService{ServiceParams: params}
}

func (s *onboardingService) CreateUser(ctx context.Context, appID, externalRef, email string) (*CreateUserResult, error) {
	if existing, err := s.UserRepo.GetByExternalRef(ctx, appID, externalRef); err == nil {
		t, err := s.TeamRepo.GetPersonalTeamByOwner(ctx, appID, existing.ID)
		if err != nil {
			return nil, err
		}
		be, err := s.BillingEntityRepo.GetByTeamID(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		m, err := s.TeamMemberRepo.Get(ctx, t.ID, existing.ID)
		if err != nil {
			return nil, err
		}
		return &CreateUserResult{User: existing, PersonalTeam: t, BillingEntity: be, Member: m}, nil
	}

	u := &user.User{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixUser),
		AppID:       appID,
		ExternalRef: externalRef,
		Email:       email,
	}
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	t := &team.Team{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixTeam),
		AppID:           appID,
		Name:            email,
		Kind:            types.TeamKindPersonal,
		OwnerUserID:     &u.ID,
		BillingMode:     types.BillingModeSubscription,
		DefaultCurrency: "usd",
	}
	if err := s.TeamRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	be := &billingentity.BillingEntity{
		ID:     types.GenerateUUIDWithPrefix(types.UUIDPrefixBillingEntity),
		Type:   types.BillingEntityTypeTeam,
		TeamID: t.ID,
	}
	if err := s.BillingEntityRepo.Create(ctx, be); err != nil {
		return nil, err
	}

	m := &teammember.TeamMember{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixTeamMember),
		TeamID:    t.ID,
		UserID:    u.ID,
		Role:      types.TeamMemberRoleOwner,
		Status:    types.TeamMemberStatusActive,
		StartedAt: time.Now().UTC(),
	}
	if err := s.TeamMemberRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	return &CreateUserResult{User: u, PersonalTeam: t, BillingEntity: be, Member: m}, nil
}

func (s *onboardingService) CreateTeam(ctx context.Context, req CreateTeamRequest) (*team.Team, error) {
	if req.ExternalTeamID != nil && *req.ExternalTeamID != "" {
		if ref, err := s.ExternalTeamRefRepo.Get(ctx, req.AppID, *req.ExternalTeamID); err == nil {
			return s.TeamRepo.Get(ctx, ref.BillingTeamID)
		}
	}

	currency := req.DefaultCurrency
	if currency == "" {
		currency = "usd"
	}
	billingMode := req.BillingMode
	if billingMode == "" {
		billingMode = types.BillingModeSubscription
	}

	t := &team.Team{
		ID:              types.GenerateUUIDWithPrefix(types.UUIDPrefixTeam),
		AppID:           req.AppID,
		Name:            req.Name,
		Kind:            types.TeamKindStandard,
		BillingMode:     billingMode,
		DefaultCurrency: currency,
	}
	if err := s.TeamRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	be := &billingentity.BillingEntity{
		ID:     types.GenerateUUIDWithPrefix(types.UUIDPrefixBillingEntity),
		Type:   types.BillingEntityTypeTeam,
		TeamID: t.ID,
	}
	if err := s.BillingEntityRepo.Create(ctx, be); err != nil {
		return nil, err
	}

	if req.ExternalTeamID != nil && *req.ExternalTeamID != "" {
		ref := &externalteamref.ExternalTeamRef{
			AppID:          req.AppID,
			ExternalTeamID: *req.ExternalTeamID,
			BillingTeamID:  t.ID,
		}
		if err := s.ExternalTeamRefRepo.Create(ctx, ref); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (s *onboardingService) AddTeamMember(ctx context.Context, appID, teamID, externalRef, email string, role types.TeamMemberRole) (*teammember.TeamMember, error) {
	u, err := s.UserRepo.GetByExternalRef(ctx, appID, externalRef)
	if err != nil {
		u = &user.User{
			ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixUser),
			AppID:       appID,
			ExternalRef: externalRef,
			Email:       email,
		}
		if err := s.UserRepo.Create(ctx, u); err != nil {
			return nil, err
		}
	}

	if existing, err := s.TeamMemberRepo.Get(ctx, teamID, u.ID); err == nil {
		if existing.Status == types.TeamMemberStatusRemoved {
			if err := s.TeamMemberRepo.Reactivate(ctx, teamID, u.ID); err != nil {
				return nil, err
			}
			existing.Status = types.TeamMemberStatusActive
			existing.EndedAt = nil
		}
		return existing, nil
	}

	m := &teammember.TeamMember{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixTeamMember),
		TeamID:    teamID,
		UserID:    u.ID,
		Role:      role,
		Status:    types.TeamMemberStatusActive,
		StartedAt: time.Now().UTC(),
	}
	if err := s.TeamMemberRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
