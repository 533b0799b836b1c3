package v1

import (
	"net/http"

	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
)

type IngestionHandler struct {
	service service.IngestionService
	log     *logger.Logger
}

func NewIngestionHandler(service service.IngestionService, log *logger.Logger) *IngestionHandler {
	return &IngestionHandler{service: service, log: log}
}

type ingestBatchRequest struct {
	Events []service.IngestEvent `json:"events"`
}

// Ingest implements §4.I's batch-ingest route.
func (h *IngestionHandler) Ingest(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok || !claims.HasScope(types.ScopeUsageWrite) {
		_ = c.Error(ierr.NewErrorf("missing usage:write scope").Mark(ierr.ErrForbidden))
		return
	}

	var req ingestBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ierr.WithError(err).WithMessage("invalid request body").Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.IngestBatch(c.Request.Context(), claims.AppID, req.Events)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}
