package v1

import (
	"net/http"
	"time"

	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service service.AdminService
	log     *logger.Logger
}

func NewAdminHandler(service service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{service: service, log: log}
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(ierr.WithError(err).WithMessage("invalid request body").Mark(ierr.ErrValidation))
		return false
	}
	return true
}

func (h *AdminHandler) CreateApp(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.service.CreateApp(c.Request.Context(), req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AdminHandler) MintAppSecret(c *gin.Context) {
	secret, err := h.service.MintAppSecret(c.Request.Context(), c.Param("appId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, secret)
}

func (h *AdminHandler) RevokeAppSecret(c *gin.Context) {
	if err := h.service.RevokeAppSecret(c.Request.Context(), c.Param("kid")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req struct {
		AppID string `json:"appId" binding:"required"`
		Code  string `json:"code" binding:"required"`
		Name  string `json:"name" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.service.CreatePlan(c.Request.Context(), req.AppID, req.Code, req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *AdminHandler) AddStripeProductMap(c *gin.Context) {
	var req struct {
		Kind            types.StripeProductKind `json:"kind" binding:"required"`
		StripeProductID string                  `json:"stripeProductId" binding:"required"`
		StripePriceID   string                  `json:"stripePriceId" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.service.AddStripeProductMap(c.Request.Context(), c.Param("planId"), req.Kind, req.StripeProductID, req.StripePriceID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *AdminHandler) CreateBundle(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.CreateBundle(c.Request.Context(), req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *AdminHandler) AddBundleApp(c *gin.Context) {
	var req struct {
		AppID               string          `json:"appId" binding:"required"`
		DefaultFeatureFlags map[string]bool `json:"defaultFeatureFlags,omitempty"`
	}
	if !bindJSON(c, &req) {
		return
	}
	ba, err := h.service.AddBundleApp(c.Request.Context(), c.Param("bundleId"), req.AppID, req.DefaultFeatureFlags)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ba)
}

func (h *AdminHandler) AddBundleMeterPolicy(c *gin.Context) {
	var req struct {
		AppID          string              `json:"appId" binding:"required"`
		MeterKey       string              `json:"meterKey" binding:"required"`
		LimitType      types.LimitType     `json:"limitType" binding:"required"`
		IncludedAmount *int64              `json:"includedAmount,omitempty"`
		Enforcement    types.Enforcement   `json:"enforcement" binding:"required"`
		OverageBilling types.OverageBilling `json:"overageBilling" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.service.AddBundleMeterPolicy(c.Request.Context(), c.Param("bundleId"), req.AppID, req.MeterKey, req.LimitType, req.IncludedAmount, req.Enforcement, req.OverageBilling)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *AdminHandler) CreateContract(c *gin.Context) {
	var req struct {
		BillToID  string                `json:"billToId" binding:"required"`
		BundleID  string                `json:"bundleId" binding:"required"`
		Currency  string                `json:"currency" binding:"required"`
		Period    types.BillingPeriod   `json:"period" binding:"required"`
		TermsDays int                   `json:"termsDays"`
		Mode      types.PricingMode     `json:"pricingMode" binding:"required"`
		StartsAt  time.Time             `json:"startsAt" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	contract, err := h.service.CreateContract(c.Request.Context(), req.BillToID, req.BundleID, req.Currency, req.Period, req.TermsDays, req.Mode, req.StartsAt)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *AdminHandler) AddContractOverride(c *gin.Context) {
	var req struct {
		AppID    string                        `json:"appId" binding:"required"`
		MeterKey string                        `json:"meterKey" binding:"required"`
		Override service.ContractOverrideInput `json:"override"`
	}
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.service.AddContractOverride(c.Request.Context(), c.Param("contractId"), req.AppID, req.MeterKey, req.Override)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *AdminHandler) CreatePriceBook(c *gin.Context) {
	var req struct {
		AppID         string             `json:"appId" binding:"required"`
		Kind          types.PriceBookKind `json:"kind" binding:"required"`
		Version       int                `json:"version"`
		Currency      string             `json:"currency" binding:"required"`
		EffectiveFrom time.Time          `json:"effectiveFrom" binding:"required"`
		EffectiveTo   *time.Time         `json:"effectiveTo,omitempty"`
	}
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.CreatePriceBook(c.Request.Context(), req.AppID, req.Kind, req.Version, req.Currency, req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *AdminHandler) AddPriceRule(c *gin.Context) {
	var req struct {
		Priority int    `json:"priority"`
		Match    []byte `json:"match" binding:"required"`
		Rule     []byte `json:"rule" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.service.AddPriceRule(c.Request.Context(), c.Param("priceBookId"), req.Priority, req.Match, req.Rule)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *AdminHandler) GenerateInvoice(c *gin.Context) {
	var req struct {
		PeriodStart time.Time `json:"periodStart" binding:"required"`
		PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.service.GenerateInvoice(c.Request.Context(), c.Param("contractId"), req.PeriodStart, req.PeriodEnd)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *AdminHandler) GetInvoice(c *gin.Context) {
	inv, items, err := h.service.GetInvoice(c.Request.Context(), c.Param("invoiceId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv, "lineItems": items})
}
