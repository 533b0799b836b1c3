package webhookevent

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inMemoryRepo struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newInMemoryRepo() *inMemoryRepo {
	return &inMemoryRepo{seen: map[string]bool{}}
}

func (r *inMemoryRepo) Record(ctx context.Context, eventID, eventType string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[eventID] {
		return false, nil
	}
	r.seen[eventID] = true
	return true, nil
}

// TestRecord_DedupsByEventID covers §8 scenario 6: a checkout.session.completed
// event replayed with the same event.id is recorded once and swallowed on
// every subsequent delivery.
func TestRecord_DedupsByEventID(t *testing.T) {
	repo := newInMemoryRepo()
	ctx := context.Background()

	recorded, err := repo.Record(ctx, "evt_123", "checkout.session.completed")
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = repo.Record(ctx, "evt_123", "checkout.session.completed")
	require.NoError(t, err)
	assert.False(t, recorded)
}

func TestRecord_DistinctEventIDsBothRecord(t *testing.T) {
	repo := newInMemoryRepo()
	ctx := context.Background()

	recorded, err := repo.Record(ctx, "evt_1", "invoice.paid")
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = repo.Record(ctx, "evt_2", "invoice.paid")
	require.NoError(t, err)
	assert.True(t, recorded)
}

// TestRecord_ConcurrentSameEventID covers the exactly-once guarantee under
// concurrent webhook redelivery: only one of N concurrent callers sees
// recorded=true.
func TestRecord_ConcurrentSameEventID(t *testing.T) {
	repo := newInMemoryRepo()
	ctx := context.Background()

	const callers = 20
	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			recorded, err := repo.Record(ctx, "evt_race", "payment_intent.succeeded")
			require.NoError(t, err)
			if recorded {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, successes)
}
