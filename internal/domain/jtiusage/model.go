package jtiusage

import "time"

// JtiUsage is the replay-protection record for a verified JWT. The unique
// index on JTI is the sole serialization point — no in-memory cache is
// authoritative.
type JtiUsage struct {
	JTI       string    `db:"jti" json:"jti"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}
