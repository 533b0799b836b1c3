package pricerule

import "context"

// Repository defines persistence operations for PriceRule.
type Repository interface {
	Create(ctx context.Context, r *PriceRule) error
	// ListByPriceBookID returns every rule for a book ordered by Priority
	// descending, per §4.P's rule-matching step.
	ListByPriceBookID(ctx context.Context, priceBookID string) ([]*PriceRule, error)
}
