package team

import "context"

// Repository defines persistence operations for Team.
type Repository interface {
	Create(ctx context.Context, t *Team) error
	Get(ctx context.Context, id string) (*Team, error)
	GetPersonalTeamByOwner(ctx context.Context, appID, ownerUserID string) (*Team, error)
	Update(ctx context.Context, t *Team) error

	// ClaimExternalCustomer performs the compare-and-swap claim described in
	// §4.C: succeeds only if ExternalCustomerID is currently NULL.
	ClaimExternalCustomer(ctx context.Context, teamID, pendingID string) (bool, error)
	// SetExternalCustomer writes the real external customer ID once the
	// create call has succeeded.
	SetExternalCustomer(ctx context.Context, teamID, externalCustomerID string) error
	// RollbackExternalCustomerClaim clears a pending claim back to NULL,
	// guarded by the pending value so a concurrent successful claim is
	// never clobbered.
	RollbackExternalCustomerClaim(ctx context.Context, teamID, pendingID string) error
}
