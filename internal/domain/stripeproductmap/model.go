package stripeproductmap

import "github.com/flexprice/billing-engine/internal/types"

// StripeProductMap links a Plan to the external Stripe product/price IDs
// used to build subscription checkout line items.
type StripeProductMap struct {
	ID              string                  `db:"id" json:"id"`
	PlanID          string                  `db:"plan_id" json:"planId"`
	Kind            types.StripeProductKind `db:"kind" json:"kind"`
	StripeProductID string                  `db:"stripe_product_id" json:"stripeProductId"`
	StripePriceID   string                  `db:"stripe_price_id" json:"stripePriceId"`
}
