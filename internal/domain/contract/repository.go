package contract

import "context"

// Repository defines persistence operations for Contract.
type Repository interface {
	Create(ctx context.Context, c *Contract) error
	Get(ctx context.Context, id string) (*Contract, error)
	GetActiveByBillToID(ctx context.Context, billToID string) (*Contract, error)
	Update(ctx context.Context, c *Contract) error
	// ListActive returns every Active contract; the period-close engine
	// checks each one's due-ness against its latest invoice.
	ListActive(ctx context.Context) ([]*Contract, error)
}
