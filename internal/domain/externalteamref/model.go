package externalteamref

import "time"

// ExternalTeamRef maps a tenant's own team identifier to a billing Team,
// letting POST .../teams create idempotently on externalTeamId.
type ExternalTeamRef struct {
	AppID          string    `db:"app_id" json:"appId"`
	ExternalTeamID string    `db:"external_team_id" json:"externalTeamId"`
	BillingTeamID  string    `db:"billing_team_id" json:"billingTeamId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
