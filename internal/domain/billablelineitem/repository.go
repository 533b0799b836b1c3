package billablelineitem

import "context"

// Repository defines persistence operations for BillableLineItem.
type Repository interface {
	// CreatePair persists the COGS and CUSTOMER line items for one usage
	// event in a single transaction, per §4.P step 5.
	CreatePair(ctx context.Context, cogs, customer *BillableLineItem) error
	Get(ctx context.Context, id string) (*BillableLineItem, error)
	// PriceBookKind returns the Kind of the line item's PriceBook, needed
	// by the wallet debiter to skip non-CUSTOMER line items.
	PriceBookKind(ctx context.Context, id string) (string, error)
	MarkWalletDebited(ctx context.Context, ids []string) error
	// ListUndebited returns every CUSTOMER-book line item with no
	// WalletDebitedAt, for debitBatch's daily sweep.
	ListUndebited(ctx context.Context) ([]*BillableLineItem, error)
}
