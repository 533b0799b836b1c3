package contract

import (
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// Contract is an enterprise agreement bound to one BillingEntity and one
// Bundle. At most one Active contract exists per BillToID, enforced by a
// partial unique index on (billToId) WHERE status='ACTIVE'.
type Contract struct {
	ID            string               `db:"id" json:"id"`
	BillToID      string               `db:"bill_to_id" json:"billToId"`
	BundleID      string               `db:"bundle_id" json:"bundleId"`
	Status        types.ContractStatus `db:"status" json:"status"`
	Currency      string               `db:"currency" json:"currency"`
	BillingPeriod types.BillingPeriod  `db:"billing_period" json:"billingPeriod"`
	TermsDays     int                  `db:"terms_days" json:"termsDays"`
	PricingMode   types.PricingMode    `db:"pricing_mode" json:"pricingMode"`
	StartsAt      time.Time            `db:"starts_at" json:"startsAt"`
	EndsAt        *time.Time           `db:"ends_at" json:"endsAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// periodMonths returns the calendar-month length of one billing period.
func (c *Contract) periodMonths() int {
	if c.BillingPeriod == types.BillingPeriodQuarterly {
		return 3
	}
	return 1
}

// NextPeriod returns [start, end) for the period beginning at since, using
// UTC calendar-month addition. since is StartsAt for a contract with no
// prior invoice, or the periodEnd of its most recently closed period
// otherwise — periods are sequential, each picking up where the last left
// off.
func (c *Contract) NextPeriod(since time.Time) (start, end time.Time) {
	start = since.UTC()
	end = start.AddDate(0, c.periodMonths(), 0)
	return start, end
}

// PeriodDue reports whether the period beginning at since has ended by
// asOf, per §4.V's "find due contracts" rule: periodEnd(asOf) ≤ asOf.
func (c *Contract) PeriodDue(since, asOf time.Time) (start, end time.Time, due bool) {
	start, end = c.NextPeriod(since)
	return start, end, !asOf.UTC().Before(end)
}
