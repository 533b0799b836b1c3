package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/flexprice/billing-engine/internal/domain/billingentity"
	"github.com/flexprice/billing-engine/internal/domain/ledgerentry"
	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	service           service.LedgerService
	billingEntityRepo billingentity.Repository
	log               *logger.Logger
}

func NewLedgerHandler(service service.LedgerService, billingEntityRepo billingentity.Repository, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{service: service, billingEntityRepo: billingEntityRepo, log: log}
}

// billToIDForTeam resolves the BillToID the ledger is keyed on from a
// :teamId route param.
func (h *LedgerHandler) billToIDForTeam(c *gin.Context) (string, error) {
	be, err := h.billingEntityRepo.GetByTeamID(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		return "", err
	}
	return be.ID, nil
}

// Balance implements §4.L's balance query: GET
// /v1/teams/:teamId/ledger/balance?accountType=WALLET.
func (h *LedgerHandler) Balance(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok || !claims.HasScope(types.ScopeBillingRead) {
		_ = c.Error(ierr.NewErrorf("missing billing:read scope").Mark(ierr.ErrForbidden))
		return
	}

	accountType := types.LedgerAccountType(c.Query("accountType"))
	if accountType == "" {
		accountType = types.LedgerAccountAR
	}

	billToID, err := h.billToIDForTeam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	balance, err := h.service.GetBalance(c.Request.Context(), claims.AppID, billToID, accountType)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balanceMinor": balance, "accountType": accountType})
}

// Entries implements §4.L's entry query: GET
// /v1/teams/:teamId/ledger/entries.
func (h *LedgerHandler) Entries(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok || !claims.HasScope(types.ScopeBillingRead) {
		_ = c.Error(ierr.NewErrorf("missing billing:read scope").Mark(ierr.ErrForbidden))
		return
	}

	billToID, err := h.billToIDForTeam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	filter := ledgerentry.ListFilter{
		AppID:    claims.AppID,
		BillToID: billToID,
		Type:     c.Query("type"),
		Limit:    50,
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}

	entries, total, err := h.service.GetEntries(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": total})
}
