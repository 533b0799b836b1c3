package types

import "time"

// OutboundEventKind names a tenant-facing event delivered through the
// outbound notifier (ledger activity, invoice lifecycle, entitlement
// changes). Distinct from WebhookEvent, which records an INBOUND event
// received from Stripe.
type OutboundEventKind string

const (
	OutboundEventLedgerEntryCreated   OutboundEventKind = "ledger_entry.created"
	OutboundEventInvoiceIssued        OutboundEventKind = "invoice.issued"
	OutboundEventInvoicePaid          OutboundEventKind = "invoice.paid"
	OutboundEventEntitlementRefreshed OutboundEventKind = "entitlement.refreshed"
	OutboundEventWalletDebited        OutboundEventKind = "wallet.debited"
)

// OutboundEvent is the envelope published onto the internal notify topic
// and, from there, forwarded to a tenant app's Svix application.
type OutboundEvent struct {
	ID        string            `json:"id"`
	AppID     string            `json:"app_id"`
	Kind      OutboundEventKind `json:"kind"`
	Payload   []byte            `json:"payload"`
	CreatedAt time.Time         `json:"created_at"`
}
