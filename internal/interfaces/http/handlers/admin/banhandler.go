package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courtside/internal/application/ban/usecases"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/utils"
)

// BanHandler serves the admin ban surface for both devices and accounts.
type BanHandler struct {
	banDeviceUC  *usecases.BanDeviceUseCase
	banAccountUC *usecases.BanAccountUseCase
	liftBanUC    *usecases.LiftBanUseCase
	listBansUC   *usecases.ListBansUseCase
	logger       logger.Interface
}

func NewBanHandler(
	banDeviceUC *usecases.BanDeviceUseCase,
	banAccountUC *usecases.BanAccountUseCase,
	liftBanUC *usecases.LiftBanUseCase,
	listBansUC *usecases.ListBansUseCase,
	logger logger.Interface,
) *BanHandler {
	return &BanHandler{
		banDeviceUC:  banDeviceUC,
		banAccountUC: banAccountUC,
		liftBanUC:    liftBanUC,
		listBansUC:   listBansUC,
		logger:       logger,
	}
}

type banDeviceRequest struct {
	DeviceID    string     `json:"device_id" binding:"required"`
	Reason      string     `json:"reason"`
	BannedUntil *time.Time `json:"banned_until"`
}

type banAccountRequest struct {
	AccountID   uint       `json:"account_id" binding:"required"`
	Reason      string     `json:"reason"`
	BannedUntil *time.Time `json:"banned_until"`
}

// BanDevice handles POST /admin/bans/devices
func (h *BanHandler) BanDevice(c *gin.Context) {
	var req banDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.banDeviceUC.Execute(c.Request.Context(), usecases.BanDeviceCommand{
		DeviceID:    req.DeviceID,
		Reason:      req.Reason,
		BannedUntil: req.BannedUntil,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("device banned", "device_id", req.DeviceID, "reason", req.Reason)
	utils.CreatedResponse(c, result, "device banned")
}

// BanAccount handles POST /admin/bans/accounts
func (h *BanHandler) BanAccount(c *gin.Context) {
	var req banAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.banAccountUC.Execute(c.Request.Context(), usecases.BanAccountCommand{
		AccountID:   req.AccountID,
		Reason:      req.Reason,
		BannedUntil: req.BannedUntil,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("account banned", "account_id", req.AccountID, "reason", req.Reason)
	utils.CreatedResponse(c, result, "account banned")
}

// LiftDeviceBan handles DELETE /admin/bans/devices/:device_id
func (h *BanHandler) LiftDeviceBan(c *gin.Context) {
	deviceID := c.Param("device_id")
	if deviceID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("device ID is required"))
		return
	}

	if err := h.liftBanUC.ExecuteDevice(c.Request.Context(), usecases.LiftDeviceBanCommand{DeviceID: deviceID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("device ban lifted", "device_id", deviceID)
	utils.NoContentResponse(c)
}

// LiftAccountBan handles DELETE /admin/bans/accounts/:account_id
func (h *BanHandler) LiftAccountBan(c *gin.Context) {
	accountID, err := utils.ParseUintParam(c, "account_id", "account")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.liftBanUC.ExecuteAccount(c.Request.Context(), usecases.LiftAccountBanCommand{AccountID: accountID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("account ban lifted", "account_id", accountID)
	utils.NoContentResponse(c)
}

// ListBans handles GET /admin/bans
func (h *BanHandler) ListBans(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	result, err := h.listBansUC.Execute(c.Request.Context(), usecases.ListBansQuery{ActiveOnly: activeOnly})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
