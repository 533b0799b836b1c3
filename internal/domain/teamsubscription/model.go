package teamsubscription

import (
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// TeamSubscription links a Team to a Plan via an external Stripe
// subscription. StripeSubscriptionID is unique and is the upsert key used
// by the webhook reconciler.
type TeamSubscription struct {
	ID                   string                        `db:"id" json:"id"`
	TeamID               string                        `db:"team_id" json:"teamId"`
	PlanID               string                        `db:"plan_id" json:"planId"`
	StripeSubscriptionID string                        `db:"stripe_subscription_id" json:"stripeSubscriptionId"`
	Status               types.TeamSubscriptionStatus  `db:"status" json:"status"`
	CurrentPeriodStart   time.Time                     `db:"current_period_start" json:"currentPeriodStart"`
	CurrentPeriodEnd     time.Time                     `db:"current_period_end" json:"currentPeriodEnd"`
	SeatsQuantity        int                           `db:"seats_quantity" json:"seatsQuantity"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
