package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courtside/internal/application/entitlement/usecases"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/id"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/utils"
)

// GrantHandler serves the admin grant surface: manual issuance, revocation,
// and per-account listings.
type GrantHandler struct {
	grantAccessUC *usecases.GrantAccessUseCase
	revokeGrantUC *usecases.RevokeGrantUseCase
	listGrantsUC  *usecases.ListGrantsUseCase
	logger        logger.Interface
}

func NewGrantHandler(
	grantAccessUC *usecases.GrantAccessUseCase,
	revokeGrantUC *usecases.RevokeGrantUseCase,
	listGrantsUC *usecases.ListGrantsUseCase,
	logger logger.Interface,
) *GrantHandler {
	return &GrantHandler{
		grantAccessUC: grantAccessUC,
		revokeGrantUC: revokeGrantUC,
		listGrantsUC:  listGrantsUC,
		logger:        logger,
	}
}

type grantAccessRequest struct {
	AccountID   uint       `json:"account_id" binding:"required"`
	ScopeType   string     `json:"scope_type" binding:"required"`
	CourseID    uint       `json:"course_id"`
	CardID      uint       `json:"card_id"`
	MonthNumber int        `json:"month_number"`
	SourceKind  string     `json:"source_kind"`
	EndAt       *time.Time `json:"end_at"`
}

// GrantAccess handles POST /admin/grants
func (h *GrantHandler) GrantAccess(c *gin.Context) {
	var req grantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	sourceKind := req.SourceKind
	if sourceKind == "" {
		sourceKind = "admin"
	}

	cmd := usecases.GrantAccessCommand{
		AccountID:   req.AccountID,
		ScopeType:   req.ScopeType,
		CourseID:    req.CourseID,
		CardID:      req.CardID,
		MonthNumber: req.MonthNumber,
		SourceKind:  sourceKind,
		EndAt:       req.EndAt,
	}

	result, err := h.grantAccessUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		if !errors.IsAppError(err) {
			h.logger.Errorw("grant issuance failed", "error", err, "account_id", req.AccountID)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "grant issued successfully")
}

// RevokeGrant handles DELETE /admin/grants/:grant_id
func (h *GrantHandler) RevokeGrant(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "grant_id", id.PrefixGrant, "grant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.revokeGrantUC.Execute(c.Request.Context(), usecases.RevokeGrantCommand{SID: sid}); err != nil {
		if !errors.IsAppError(err) {
			h.logger.Errorw("grant revocation failed", "error", err, "sid", sid)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("grant revoked", "sid", sid)
	utils.NoContentResponse(c)
}

// ListGrants handles GET /admin/accounts/:account_id/grants
func (h *GrantHandler) ListGrants(c *gin.Context) {
	accountID, err := utils.ParseUintParam(c, "account_id", "account")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listGrantsUC.Execute(c.Request.Context(), usecases.ListGrantsQuery{AccountID: accountID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
