package v1

import (
	"net/http"

	ierr "github.com/flexprice/billing-engine/internal/errors"
	"github.com/flexprice/billing-engine/internal/logger"
	"github.com/flexprice/billing-engine/internal/service"
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	service service.OnboardingService
	log     *logger.Logger
}

func NewOnboardingHandler(service service.OnboardingService, log *logger.Logger) *OnboardingHandler {
	return &OnboardingHandler{service: service, log: log}
}

type createUserRequest struct {
	ExternalRef string `json:"externalRef" binding:"required"`
	Email       string `json:"email" binding:"required"`
}

// CreateUser implements §6's "Create User" route: POST /v1/users.
func (h *OnboardingHandler) CreateUser(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok {
		_ = c.Error(ierr.NewErrorf("missing claims").Mark(ierr.ErrUnauthorized))
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ierr.WithError(err).WithMessage("invalid request body").Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.CreateUser(c.Request.Context(), claims.AppID, req.ExternalRef, req.Email)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type createTeamRequest struct {
	Name            string            `json:"name" binding:"required"`
	DefaultCurrency string            `json:"defaultCurrency"`
	BillingMode     types.BillingMode `json:"billingMode"`
	ExternalTeamID  *string           `json:"externalTeamId,omitempty"`
}

// CreateTeam implements §6's "Create Team" route: POST /v1/teams.
func (h *OnboardingHandler) CreateTeam(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok {
		_ = c.Error(ierr.NewErrorf("missing claims").Mark(ierr.ErrUnauthorized))
		return
	}
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ierr.WithError(err).WithMessage("invalid request body").Mark(ierr.ErrValidation))
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), service.CreateTeamRequest{
		AppID:           claims.AppID,
		Name:            req.Name,
		DefaultCurrency: req.DefaultCurrency,
		BillingMode:     req.BillingMode,
		ExternalTeamID:  req.ExternalTeamID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

type addTeamMemberRequest struct {
	ExternalRef string                `json:"externalRef" binding:"required"`
	Email       string                `json:"email" binding:"required"`
	Role        types.TeamMemberRole  `json:"role" binding:"required"`
}

// AddTeamMember implements §6's "Add Team Member" route: POST
// /v1/teams/:teamId/members.
func (h *OnboardingHandler) AddTeamMember(c *gin.Context) {
	claims, ok := types.GetClaims(c.Request.Context())
	if !ok {
		_ = c.Error(ierr.NewErrorf("missing claims").Mark(ierr.ErrUnauthorized))
		return
	}
	var req addTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(ierr.WithError(err).WithMessage("invalid request body").Mark(ierr.ErrValidation))
		return
	}

	member, err := h.service.AddTeamMember(c.Request.Context(), claims.AppID, c.Param("teamId"), req.ExternalRef, req.Email, req.Role)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, member)
}
