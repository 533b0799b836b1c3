package v1

import (
	"net/http"

	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
)

type EntitlementHandler struct {
	service service.EntitlementService
	log     *logger.Logger
}

func NewEntitlementHandler(service service.EntitlementService, log *logger.Logger) *EntitlementHandler {
	return &EntitlementHandler{service: service, log: log}
}

// Get implements §4.E's resolveEntitlements route: GET
// /v1/teams/:teamId/entitlements.
func (h *EntitlementHandler) Get(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok || !claims.HasScope(types.ScopeEntitlementsRead) {
		_ = c.Error(ierr.NewErrorf("missing entitlements:read scope").Mark(ierr.ErrForbidden))
		return
	}

	teamID := c.Param("teamId")
	entitlements, err := h.service.ResolveEntitlements(c.Request.Context(), claims.AppID, teamID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entitlements)
}
