package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"courtside/internal/application/redemption/usecases"
	"courtside/internal/shared/constants"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/utils"
)

// RedemptionHandler serves the user-facing code redemption endpoint.
type RedemptionHandler struct {
	redeemCodeUC *usecases.RedeemCodeUseCase
	logger       logger.Interface
}

func NewRedemptionHandler(redeemCodeUC *usecases.RedeemCodeUseCase, logger logger.Interface) *RedemptionHandler {
	return &RedemptionHandler{
		redeemCodeUC: redeemCodeUC,
		logger:       logger,
	}
}

type redeemCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RedeemCode handles POST /codes/redeem
func (h *RedemptionHandler) RedeemCode(c *gin.Context) {
	var req redeemCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("code is required"))
		return
	}

	accountID, authenticated := accountFromContext(c)
	if !authenticated {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required to redeem a code")
		return
	}

	cmd := usecases.RedeemCodeCommand{
		Code:      strings.TrimSpace(req.Code),
		AccountID: accountID,
	}

	result, err := h.redeemCodeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		if !errors.IsAppError(err) {
			h.logger.Errorw("code redemption failed",
				"error", err,
				"account_id", accountID,
				"device_id", c.GetString(constants.ContextKeyDeviceID))
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("code redeemed",
		"account_id", accountID,
		"scope_type", result.ScopeType,
		"grant_sid", result.GrantSID)

	utils.SuccessResponse(c, http.StatusOK, "code redeemed successfully", result)
}
