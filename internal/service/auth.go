package service

import (
	"context"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/appsecret"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/golang-jwt/jwt/v4"
)

const expectedAudience = "billing-service"

// AuthService implements §4.A's seven-step JWT verification.
type AuthService interface {
	VerifyToken(ctx context.Context, token string) (*types.Claims, error)
}

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{ServiceParams: params}
}

func (s *authService) VerifyToken(ctx context.Context, token string) (*types.Claims, error) {
	claims := &types.Claims{}
	var secret *appsecret.AppSecret
	var keyFuncErr error

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			keyFuncErr = ierr.NewErrorf("missing kid header").Mark(ierr.ErrUnauthorized)
			return nil, keyFuncErr
		}

		resolved, err := s.AppSecretRepo.GetByKID(ctx, kid)
		if err != nil {
			keyFuncErr = appsecret.ErrNotFound(kid)
			return nil, keyFuncErr
		}
		if resolved.Status != types.AppSecretStatusActive {
			keyFuncErr = appsecret.ErrNotActive(kid)
			return nil, keyFuncErr
		}
		secret = resolved

		plainSecret, err := s.Encryption.Decrypt(resolved.SecretCiphertext)
		if err != nil {
			keyFuncErr = ierr.WithError(err).WithMessage("decrypt app secret").Mark(ierr.ErrSystem)
			return nil, keyFuncErr
		}
		return []byte(plainSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if keyFuncErr != nil {
		return nil, keyFuncErr
	}
	if err != nil {
		return nil, ierr.WithError(err).WithMessage("invalid token signature").Mark(ierr.ErrUnauthorized)
	}
	if secret == nil {
		return nil, ierr.NewErrorf("app secret not resolved").Mark(ierr.ErrUnauthorized)
	}
	claims.KID = secret.KID

	skew := time.Duration(s.Config.Auth.JWTClockSkewSeconds) * time.Second
	now := time.Now()
	switch {
	case claims.Issuer != "app:"+secret.AppID:
		return nil, ierr.NewErrorf("unexpected issuer").Mark(ierr.ErrUnauthorized)
	case claims.Audience != expectedAudience:
		return nil, ierr.NewErrorf("unexpected audience").Mark(ierr.ErrUnauthorized)
	case time.Unix(claims.ExpiresAt, 0).Add(skew).Before(now):
		return nil, ierr.NewErrorf("token expired").Mark(ierr.ErrUnauthorized)
	case time.Unix(claims.IssuedAt, 0).Add(-skew).After(now):
		return nil, ierr.NewErrorf("token issued in the future").Mark(ierr.ErrUnauthorized)
	case claims.JTI == "":
		return nil, ierr.NewErrorf("missing jti").Mark(ierr.ErrUnauthorized)
	case claims.AppID != secret.AppID:
		return nil, ierr.NewErrorf("appId does not match app secret").Mark(ierr.ErrUnauthorized)
	case claims.Scopes == nil:
		return nil, ierr.NewErrorf("missing scopes").Mark(ierr.ErrUnauthorized)
	case claims.Subject == "":
		return nil, ierr.NewErrorf("missing sub").Mark(ierr.ErrUnauthorized)
	}

	inserted, err := s.JtiUsageRepo.Insert(ctx, claims.JTI, time.Unix(claims.ExpiresAt, 0).UTC())
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, ierr.NewErrorf("token has already been used").Mark(ierr.ErrUnauthorized)
	}

	return claims, nil
}
