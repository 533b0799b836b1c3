package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/flexprice/billing-engine/internal/config"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
)

// ClientAuth implements §4.A: every non-admin, non-webhook route requires
// a bearer JWT signed with one of the calling app's active secrets.
func ClientAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(types.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if header == "" || !ok || token == "" {
			_ = c.Error(ierr.NewErrorf("missing bearer token").Mark(ierr.ErrUnauthorized))
			c.Abort()
			return
		}

		claims, err := authService.VerifyToken(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		ctx := types.WithClaims(c.Request.Context(), *claims)
		ctx = types.WithAppID(ctx, claims.AppID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AppIDMatch enforces the spec's blanket rule that every JWT route's
// :appId path segment must match the token's own claims.appId.
func AppIDMatch(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok || claims.AppID != c.Param("appId") {
		_ = c.Error(ierr.NewErrorf("token appId does not match path appId").Mark(ierr.ErrForbidden))
		c.Abort()
		return
	}
	c.Next()
}

// RequireScope 403s any request whose verified claims lack scope.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := types.GetClaims(c.Request.Context())
		if !ok || !claims.HasScope(scope) {
			_ = c.Error(ierr.NewErrorf("missing required scope %s", scope).Mark(ierr.ErrForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminAuth implements §4's admin hook: a constant-time compare of
// x-admin-api-key against the configured value, 403 otherwise.
func AdminAuth(cfg *config.Configuration) gin.HandlerFunc {
	header := cfg.Auth.AdminAPIKeyHeader
	expected := []byte(cfg.Auth.AdminAPIKey)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(header))
		if len(got) != len(expected) || subtle.ConstantTimeCompare(got, expected) != 1 {
			_ = c.Error(ierr.NewErrorf("invalid admin api key").Mark(ierr.ErrForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}
