package v1

import (
	"net/http"

	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

func NewCheckoutHandler(service service.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, log: log}
}

type createSubscriptionCheckoutRequest struct {
	PlanCode   string `json:"planCode" binding:"required"`
	Seats      *int64 `json:"seats,omitempty"`
	SuccessURL string `json:"successUrl" binding:"required"`
	CancelURL  string `json:"cancelUrl" binding:"required"`
}

// CreateSubscriptionCheckout implements §4.C's subscription checkout
// route: POST /v1/teams/:teamId/checkout/subscription.
func (h *CheckoutHandler) CreateSubscriptionCheckout(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok {
		_ = c.Error(ierr.NewErrorf("missing claims").Mark(ierr.ErrUnauthorized))
		return
	}

	var req createSubscriptionCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ierr.WithError(err).WithMessage("invalid request body").Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.CreateSubscriptionCheckout(c.Request.Context(), service.CreateSubscriptionCheckoutRequest{
		AppID:      claims.AppID,
		TeamID:     c.Param("teamId"),
		PlanCode:   req.PlanCode,
		Seats:      req.Seats,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type createTopUpCheckoutRequest struct {
	AmountMinor int64  `json:"amountMinor" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	SuccessURL  string `json:"successUrl" binding:"required"`
	CancelURL   string `json:"cancelUrl" binding:"required"`
}

// CreateTopUpCheckout implements §4.C's wallet top-up checkout route:
// POST /v1/teams/:teamId/checkout/topup.
func (h *CheckoutHandler) CreateTopUpCheckout(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok {
		_ = c.Error(ierr.NewErrorf("missing claims").Mark(ierr.ErrUnauthorized))
		return
	}

	var req createTopUpCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ierr.WithError(err).WithMessage("invalid request body").Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.CreateTopUpCheckout(c.Request.Context(), claims.AppID, c.Param("teamId"), req.AmountMinor, req.Currency, req.SuccessURL, req.CancelURL)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}
