package appsecret

import (
	"time"

	"github.com/flexprice/billing-engine/internal/types"
)

// AppSecret is the shared HMAC key used to sign and verify a client app's
// JWTs. SecretCiphertext is AES-256-GCM encrypted at rest; only Active
// secrets may verify incoming tokens.
type AppSecret struct {
	KID              string                `db:"kid" json:"kid"`
	AppID            string                `db:"app_id" json:"appId"`
	SecretCiphertext string                `db:"secret_ciphertext" json:"-"`
	Status           types.AppSecretStatus `db:"status" json:"status"`
	RevokedAt        *time.Time            `db:"revoked_at" json:"revokedAt,omitempty"`
	CreatedAt        time.Time             `db:"created_at" json:"createdAt"`
}
