package teammember

import "context"

// Repository defines persistence operations for TeamMember.
type Repository interface {
	Create(ctx context.Context, m *TeamMember) error
	Get(ctx context.Context, teamID, userID string) (*TeamMember, error)
	Reactivate(ctx context.Context, teamID, userID string) error
	ListByTeam(ctx context.Context, teamID string) ([]*TeamMember, error)
}
