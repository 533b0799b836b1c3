package ledgerentry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inMemoryRepo is a minimal stand-in for the Postgres-backed Repository,
// used only to pin down the append-only/idempotency/balance invariants
// that the SQL implementation must also satisfy.
type inMemoryRepo struct {
	entries []*LedgerEntry
	byKey   map[string]bool
}

func newInMemoryRepo() *inMemoryRepo {
	return &inMemoryRepo{byKey: map[string]bool{}}
}

func (r *inMemoryRepo) Create(ctx context.Context, e *LedgerEntry) (bool, error) {
	if r.byKey[e.IdempotencyKey] {
		return false, nil
	}
	r.byKey[e.IdempotencyKey] = true
	r.entries = append(r.entries, e)
	return true, nil
}

func (r *inMemoryRepo) Balance(ctx context.Context, appID, billToID, accountType string) (int64, error) {
	var total int64
	for _, e := range r.entries {
		if e.AppID == appID && e.BillToID == billToID {
			total += e.AmountMinor
		}
	}
	return total, nil
}

func (r *inMemoryRepo) List(ctx context.Context, filter ListFilter) ([]*LedgerEntry, int, error) {
	return r.entries, len(r.entries), nil
}

// TestBalance_IsSumOfEntries covers the universal invariant that an
// account's balance is always reconstructable as the sum of its entries.
func TestBalance_IsSumOfEntries(t *testing.T) {
	repo := newInMemoryRepo()
	ctx := context.Background()

	entries := []*LedgerEntry{
		{AppID: "app-1", BillToID: "bill-1", AmountMinor: 500, IdempotencyKey: "k1"},
		{AppID: "app-1", BillToID: "bill-1", AmountMinor: -120, IdempotencyKey: "k2"},
		{AppID: "app-1", BillToID: "bill-1", AmountMinor: 30, IdempotencyKey: "k3"},
	}
	for _, e := range entries {
		created, err := repo.Create(ctx, e)
		require.NoError(t, err)
		assert.True(t, created)
	}

	balance, err := repo.Balance(ctx, "app-1", "bill-1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(410), balance)
}

// TestCreate_DuplicateIdempotencyKey_IsNoop covers the idempotency-key
// uniqueness invariant: the same key never posts a second entry, and the
// balance does not move on the duplicate attempt.
func TestCreate_DuplicateIdempotencyKey_IsNoop(t *testing.T) {
	repo := newInMemoryRepo()
	ctx := context.Background()

	e := &LedgerEntry{AppID: "app-1", BillToID: "bill-1", AmountMinor: 1000, IdempotencyKey: "dup-key"}
	created, err := repo.Create(ctx, e)
	require.NoError(t, err)
	assert.True(t, created)

	dup := &LedgerEntry{AppID: "app-1", BillToID: "bill-1", AmountMinor: 1000, IdempotencyKey: "dup-key"}
	created, err = repo.Create(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	balance, err := repo.Balance(ctx, "app-1", "bill-1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

// TestBalance_EmptyAccount_IsZero covers the zero-value case for an
// account with no posted entries.
func TestBalance_EmptyAccount_IsZero(t *testing.T) {
	repo := newInMemoryRepo()
	balance, err := repo.Balance(context.Background(), "app-1", "bill-unknown", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
