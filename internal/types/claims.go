package types

// Claims is the decoded payload of a verified client JWT, attached to the
// request context by the auth middleware for downstream handlers to consult.
type Claims struct {
	Issuer    string   `json:"iss"`
	Audience  string   `json:"aud"`
	Subject   string   `json:"sub"`
	AppID     string   `json:"appId"`
	TeamID    string   `json:"teamId,omitempty"`
	UserID    string   `json:"userId,omitempty"`
	Scopes    []string `json:"scopes"`
	IssuedAt  int64    `json:"iat"`
	ExpiresAt int64    `json:"exp"`
	JTI       string   `json:"jti"`
	KID       string   `json:"kid"`
	ReqHash   string   `json:"reqHash,omitempty"`
}

// HasScope reports whether the claims grant the given scope.
func (c Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Valid satisfies jwt.Claims for golang-jwt/jwt/v4's ParseWithClaims. It is
// intentionally a no-op: AuthService applies §4.A's own issuer/audience/
// clock-skew checks after parsing instead of the library's defaults.
func (c Claims) Valid() error {
	return nil
}

const (
	ScopeUsageWrite        = "usage:write"
	ScopeBillingRead       = "billing:read"
	ScopeEntitlementsRead  = "entitlements:read"
)

// DefaultScopes is granted to a token whose issuer omitted an explicit list.
var DefaultScopes = []string{ScopeUsageWrite, ScopeBillingRead, ScopeEntitlementsRead}
