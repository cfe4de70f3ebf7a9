package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtside/internal/application/device/usecases"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/utils"
)

// DeviceHandler serves the admin device association surface.
type DeviceHandler struct {
	listDevicesUC *usecases.ListDevicesUseCase
	pruneDeviceUC *usecases.PruneDeviceUseCase
	logger        logger.Interface
}

func NewDeviceHandler(
	listDevicesUC *usecases.ListDevicesUseCase,
	pruneDeviceUC *usecases.PruneDeviceUseCase,
	logger logger.Interface,
) *DeviceHandler {
	return &DeviceHandler{
		listDevicesUC: listDevicesUC,
		pruneDeviceUC: pruneDeviceUC,
		logger:        logger,
	}
}

// ListDevices handles GET /admin/accounts/:account_id/devices
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	accountID, err := utils.ParseUintParam(c, "account_id", "account")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listDevicesUC.Execute(c.Request.Context(), usecases.ListDevicesQuery{AccountID: accountID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PruneDevice handles DELETE /admin/devices/:device_id
// Removing a device's associations immediately restores access for accounts
// pushed over the device limit by that device.
func (h *DeviceHandler) PruneDevice(c *gin.Context) {
	deviceID := c.Param("device_id")
	if deviceID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("device ID is required"))
		return
	}

	if err := h.pruneDeviceUC.Execute(c.Request.Context(), usecases.PruneDeviceCommand{DeviceID: deviceID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("device pruned", "device_id", deviceID)
	utils.NoContentResponse(c)
}
