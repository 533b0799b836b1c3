package ledgeraccount

import "github.com/flexprice/billing-engine/internal/types"

// LedgerAccount is (AppID, BillToID, Type) unique, created lazily on first
// reference.
type LedgerAccount struct {
	ID       string                   `db:"id" json:"id"`
	AppID    string                   `db:"app_id" json:"appId"`
	BillToID string                   `db:"bill_to_id" json:"billToId"`
	Type     types.LedgerAccountType  `db:"type" json:"type"`
}
