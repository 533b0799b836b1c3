package teammember

import (
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// TeamMember links a User to a Team with a role. Re-adding a Removed member
// flips Status back to Active and clears EndedAt rather than inserting a
// second row.
type TeamMember struct {
	ID        string                   `db:"id" json:"id"`
	TeamID    string                   `db:"team_id" json:"teamId"`
	UserID    string                   `db:"user_id" json:"userId"`
	Role      types.TeamMemberRole     `db:"role" json:"role"`
	Status    types.TeamMemberStatus   `db:"status" json:"status"`
	StartedAt time.Time                `db:"started_at" json:"startedAt"`
	EndedAt   *time.Time               `db:"ended_at" json:"endedAt,omitempty"`
}
