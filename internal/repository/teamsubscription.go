package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexprice/billing-engine/internal/domain/teamsubscription"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/postgres"
)

type teamSubscriptionRepository struct {
	db  *postgres.DB
	log *logger.Logger
}

// NewTeamSubscriptionRepository builds a sqlx-backed teamsubscription.Repository.
func NewTeamSubscriptionRepository(db *postgres.DB, log *logger.Logger) teamsubscription.Repository {
	return &teamSubscriptionRepository{db: db, log: log}
}

// Upsert is the webhook reconciler's write path: subscription.created and
// subscription.updated both land here keyed on StripeSubscriptionID.
func (r *teamSubscriptionRepository) Upsert(ctx context.Context, s *teamsubscription.TeamSubscription) error {
	q := r.db.GetQuerier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO team_subscriptions
			(id, team_id, plan_id, stripe_subscription_id, status,
			 current_period_start, current_period_end, seats_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (stripe_subscription_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			status = EXCLUDED.status,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = EXCLUDED.current_period_end,
			seats_quantity = EXCLUDED.seats_quantity,
			updated_at = EXCLUDED.updated_at`,
		s.ID, s.TeamID, s.PlanID, s.StripeSubscriptionID, s.Status,
		s.CurrentPeriodStart, s.CurrentPeriodEnd, s.SeatsQuantity, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).WithMessage("upsert team subscription").Mark(ierr.ErrSystem)
	}
	return nil
}

func (r *teamSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*teamsubscription.TeamSubscription, error) {
	q := r.db.GetQuerier(ctx)
	var s teamsubscription.TeamSubscription
	err := q.GetContext(ctx, &s, `
		SELECT id, team_id, plan_id, stripe_subscription_id, status,
			current_period_start, current_period_end, seats_quantity, created_at, updated_at
		FROM team_subscriptions WHERE stripe_subscription_id = $1`, stripeSubscriptionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, teamsubscription.ErrNotFound(stripeSubscriptionID)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get team subscription").Mark(ierr.ErrSystem)
	}
	return &s, nil
}

func (r *teamSubscriptionRepository) GetActiveByTeamAndAppID(ctx context.Context, teamID, appID string) (*teamsubscription.TeamSubscription, error) {
	q := r.db.GetQuerier(ctx)
	var s teamsubscription.TeamSubscription
	err := q.GetContext(ctx, &s, `
		SELECT ts.id, ts.team_id, ts.plan_id, ts.stripe_subscription_id, ts.status,
			ts.current_period_start, ts.current_period_end, ts.seats_quantity,
			ts.created_at, ts.updated_at
		FROM team_subscriptions ts
		JOIN plans p ON p.id = ts.plan_id
		WHERE ts.team_id = $1 AND p.app_id = $2 AND ts.status = 'ACTIVE'
		ORDER BY ts.created_at DESC LIMIT 1`, teamID, appID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, teamsubscription.ErrNotFound(teamID)
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("get active team subscription").Mark(ierr.ErrSystem)
	}
	return &s, nil
}
