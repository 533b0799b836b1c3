package team

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inMemoryRepo exercises the compare-and-swap claim of ExternalCustomerID
// the same way the Postgres repository does: ClaimExternalCustomer
// succeeds only when the column is currently NULL.
type inMemoryRepo struct {
	mu    sync.Mutex
	teams map[string]*Team
}

func newInMemoryRepo(t *Team) *inMemoryRepo {
	return &inMemoryRepo{teams: map[string]*Team{t.ID: t}}
}

func (r *inMemoryRepo) Create(ctx context.Context, t *Team) error { return nil }

func (r *inMemoryRepo) Get(ctx context.Context, id string) (*Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.teams[id]
	return &cp, nil
}

func (r *inMemoryRepo) GetPersonalTeamByOwner(ctx context.Context, appID, ownerUserID string) (*Team, error) {
	return nil, nil
}

func (r *inMemoryRepo) Update(ctx context.Context, t *Team) error { return nil }

func (r *inMemoryRepo) ClaimExternalCustomer(ctx context.Context, teamID, pendingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.teams[teamID]
	if t.ExternalCustomerID != nil {
		return false, nil
	}
	t.ExternalCustomerID = &pendingID
	return true, nil
}

func (r *inMemoryRepo) SetExternalCustomer(ctx context.Context, teamID, externalCustomerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[teamID].ExternalCustomerID = &externalCustomerID
	return nil
}

func (r *inMemoryRepo) RollbackExternalCustomerClaim(ctx context.Context, teamID, pendingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.teams[teamID]
	if t.ExternalCustomerID != nil && *t.ExternalCustomerID == pendingID {
		t.ExternalCustomerID = nil
	}
	return nil
}

// TestClaimExternalCustomer_ExactlyOneWinner covers §8 scenario 5: N
// concurrent callers race to claim a team's external-customer slot; only
// one observes claimed=true, mirroring the exactly-once creation
// guarantee CheckoutService relies on.
func TestClaimExternalCustomer_ExactlyOneWinner(t *testing.T) {
	repo := newInMemoryRepo(&Team{ID: "team-1"})
	ctx := context.Background()

	const callers = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	var winners int
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			claimed, err := repo.ClaimExternalCustomer(ctx, "team-1", PendingExternalCustomerPrefix+"team-1")
			require.NoError(t, err)
			if claimed {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}

func TestRollbackExternalCustomerClaim_OnlyClearsMatchingPending(t *testing.T) {
	pendingID := PendingExternalCustomerPrefix + "team-1"
	repo := newInMemoryRepo(&Team{ID: "team-1"})
	ctx := context.Background()

	claimed, err := repo.ClaimExternalCustomer(ctx, "team-1", pendingID)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, repo.SetExternalCustomer(ctx, "team-1", "cus_real"))

	// A stale rollback using the old pending value must not clobber the
	// real external customer id that has since been set.
	require.NoError(t, repo.RollbackExternalCustomerClaim(ctx, "team-1", pendingID))

	got, err := repo.Get(ctx, "team-1")
	require.NoError(t, err)
	require.NotNil(t, got.ExternalCustomerID)
	assert.Equal(t, "cus_real", *got.ExternalCustomerID)
}

func TestIsExternalCustomerPending(t *testing.T) {
	pending := PendingExternalCustomerPrefix + "team-1"
	real := "cus_real"

	tm := &Team{ExternalCustomerID: &pending}
	assert.True(t, tm.IsExternalCustomerPending())

	tm = &Team{ExternalCustomerID: &real}
	assert.False(t, tm.IsExternalCustomerPending())

	tm = &Team{}
	assert.False(t, tm.IsExternalCustomerPending())
}
