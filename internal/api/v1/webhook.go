package v1

import (
	"net/http"

	"github.com/flexprice/billing-engine/internal/api/middleware"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	service service.WebhookReconciler
	log     *logger.Logger
}

func NewWebhookHandler(service service.WebhookReconciler, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, log: log}
}

// Stripe implements §4.W's webhook route. It reads the raw body the
// rawbody middleware preserved, since the Stripe signature covers the
// exact bytes sent, not gin's re-encoded form.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	body := middleware.RawBody(c)
	if body == nil {
		_ = c.Error(ierr.NewErrorf("raw body unavailable").Mark(ierr.ErrSystem))
		return
	}

	sig := c.GetHeader(types.HeaderStripeSig)
	if err := h.service.HandleEvent(c.Request.Context(), body, sig); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
