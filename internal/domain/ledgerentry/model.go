package ledgerentry

import (
	"encoding/json"
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// LedgerEntry is an append-only monetary fact. A positive AmountMinor is a
// credit relative to the account's natural direction; a negative amount is
// a debit. No row is ever updated or deleted — corrections are new entries.
type LedgerEntry struct {
	ID              string                     `db:"id" json:"id"`
	AppID           string                     `db:"app_id" json:"appId"`
	BillToID        string                     `db:"bill_to_id" json:"billToId"`
	LedgerAccountID string                     `db:"ledger_account_id" json:"ledgerAccountId"`
	Type            types.LedgerEntryType      `db:"type" json:"type"`
	AmountMinor     int64                      `db:"amount_minor" json:"amountMinor"`
	Currency        string                     `db:"currency" json:"currency"`
	ReferenceType   types.LedgerReferenceType  `db:"reference_type" json:"referenceType"`
	ReferenceID     *string                    `db:"reference_id" json:"referenceId,omitempty"`
	IdempotencyKey  string                     `db:"idempotency_key" json:"idempotencyKey"`
	Metadata        json.RawMessage            `db:"metadata" json:"metadata,omitempty"`
	Timestamp       time.Time                  `db:"timestamp" json:"timestamp"`
}
