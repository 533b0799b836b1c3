package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/flexprice/billing-engine/internal/config"
	"github.com/flexprice/billing-engine/internal/domain/appsecret"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppSecretRepo struct {
	appsecret.Repository
	byKID map[string]*appsecret.AppSecret
}

func (f *fakeAppSecretRepo) GetByKID(ctx context.Context, kid string) (*appsecret.AppSecret, error) {
	s, ok := f.byKID[kid]
	if !ok {
		return nil, appsecret.ErrNotFound(kid)
	}
	return s, nil
}

type fakeJtiUsageRepo struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (f *fakeJtiUsageRepo) Insert(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[jti] {
		return false, nil
	}
	f.seen[jti] = true
	return true, nil
}

// identityEncryption is a no-op stand-in: the test never persists real
// ciphertext, so Decrypt just returns what was stored.
type identityEncryption struct{}

func (identityEncryption) Encrypt(plaintext string) (string, error) { return plaintext, nil }
func (identityEncryption) Decrypt(ciphertext string) (string, error) { return ciphertext, nil }

func newTestAuthService(secretRepo *fakeAppSecretRepo, jtiRepo *fakeJtiUsageRepo) AuthService {
	return NewAuthService(ServiceParams{
		Logger:        &logger.Logger{},
		Config:        &config.Configuration{Auth: config.AuthConfig{JWTClockSkewSeconds: 5}},
		Encryption:    identityEncryption{},
		AppSecretRepo: secretRepo,
		JtiUsageRepo:  jtiRepo,
	})
}

func signToken(t *testing.T, secret, kid string, claims types.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// TestVerifyToken_Replay covers §8 scenario 4: the same jti is accepted
// once and rejected on replay.
func TestVerifyToken_Replay(t *testing.T) {
	const kid = "kid-1"
	const appID = "app-1"
	const secretValue = "super-secret"

	secretRepo := &fakeAppSecretRepo{byKID: map[string]*appsecret.AppSecret{
		kid: {KID: kid, AppID: appID, SecretCiphertext: secretValue, Status: types.AppSecretStatusActive},
	}}
	jtiRepo := &fakeJtiUsageRepo{}
	svc := newTestAuthService(secretRepo, jtiRepo)

	now := time.Now()
	claims := types.Claims{
		Issuer:    "app:" + appID,
		Audience:  expectedAudience,
		Subject:   "user-1",
		AppID:     appID,
		Scopes:    []string{types.ScopeUsageWrite},
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
		JTI:       "jti-replay-1",
	}
	token := signToken(t, secretValue, kid, claims)

	verified, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, appID, verified.AppID)

	_, err = svc.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been used")
}

func TestVerifyToken_RejectsRevokedSecret(t *testing.T) {
	const kid = "kid-revoked"
	const appID = "app-1"
	const secretValue = "super-secret"

	secretRepo := &fakeAppSecretRepo{byKID: map[string]*appsecret.AppSecret{
		kid: {KID: kid, AppID: appID, SecretCiphertext: secretValue, Status: types.AppSecretStatusRevoked},
	}}
	svc := newTestAuthService(secretRepo, &fakeJtiUsageRepo{})

	now := time.Now()
	claims := types.Claims{
		Issuer: "app:" + appID, Audience: expectedAudience, Subject: "user-1",
		AppID: appID, Scopes: []string{types.ScopeUsageWrite},
		IssuedAt: now.Unix(), ExpiresAt: now.Add(time.Hour).Unix(), JTI: "jti-2",
	}
	token := signToken(t, secretValue, kid, claims)

	_, err := svc.VerifyToken(context.Background(), token)
	require.Error(t, err)
}

func TestVerifyToken_RejectsExpiredToken(t *testing.T) {
	const kid = "kid-1"
	const appID = "app-1"
	const secretValue = "super-secret"

	secretRepo := &fakeAppSecretRepo{byKID: map[string]*appsecret.AppSecret{
		kid: {KID: kid, AppID: appID, SecretCiphertext: secretValue, Status: types.AppSecretStatusActive},
	}}
	svc := newTestAuthService(secretRepo, &fakeJtiUsageRepo{})

	now := time.Now()
	claims := types.Claims{
		Issuer: "app:" + appID, Audience: expectedAudience, Subject: "user-1",
		AppID: appID, Scopes: []string{types.ScopeUsageWrite},
		IssuedAt: now.Add(-2 * time.Hour).Unix(), ExpiresAt: now.Add(-time.Hour).Unix(), JTI: "jti-3",
	}
	token := signToken(t, secretValue, kid, claims)

	_, err := svc.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestVerifyToken_RejectsWrongSignature(t *testing.T) {
	const kid = "kid-1"
	const appID = "app-1"

	secretRepo := &fakeAppSecretRepo{byKID: map[string]*appsecret.AppSecret{
		kid: {KID: kid, AppID: appID, SecretCiphertext: "correct-secret", Status: types.AppSecretStatusActive},
	}}
	svc := newTestAuthService(secretRepo, &fakeJtiUsageRepo{})

	now := time.Now()
	claims := types.Claims{
		Issuer: "app:" + appID, Audience: expectedAudience, Subject: "user-1",
		AppID: appID, Scopes: []string{types.ScopeUsageWrite},
		IssuedAt: now.Unix(), ExpiresAt: now.Add(time.Hour).Unix(), JTI: "jti-4",
	}
	token := signToken(t, "wrong-secret", kid, claims)

	_, err := svc.VerifyToken(context.Background(), token)
	require.Error(t, err)
}
