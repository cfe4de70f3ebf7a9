package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtside/internal/application/redemption/usecases"
	"courtside/internal/shared/constants"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/utils"
)

// CodeHandler serves the admin redemption code surface.
type CodeHandler struct {
	generateCodesUC *usecases.GenerateCodesUseCase
	listCodesUC     *usecases.ListCodesUseCase
	codeLength      int
	logger          logger.Interface
}

func NewCodeHandler(
	generateCodesUC *usecases.GenerateCodesUseCase,
	listCodesUC *usecases.ListCodesUseCase,
	codeLength int,
	logger logger.Interface,
) *CodeHandler {
	return &CodeHandler{
		generateCodesUC: generateCodesUC,
		listCodesUC:     listCodesUC,
		codeLength:      codeLength,
		logger:          logger,
	}
}

type generateCodesRequest struct {
	ScopeType      string `json:"scope_type" validate:"required,oneof=course package_course card"`
	CourseID       uint   `json:"course_id"`
	PackageID      uint   `json:"package_id"`
	CardID         uint   `json:"card_id"`
	Count          int    `json:"count" validate:"required,gte=1,lte=500"`
	MaxRedemptions int    `json:"max_redemptions" validate:"required,gte=1"`
	DurationDays   int    `json:"duration_days" validate:"gte=0"`
}

// GenerateCodes handles POST /admin/codes
func (h *CodeHandler) GenerateCodes(c *gin.Context) {
	var req generateCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.GenerateCodesCommand{
		ScopeType:      req.ScopeType,
		CourseID:       req.CourseID,
		PackageID:      req.PackageID,
		CardID:         req.CardID,
		Count:          req.Count,
		MaxRedemptions: req.MaxRedemptions,
		DurationDays:   req.DurationDays,
		CodeLength:     h.codeLength,
	}

	result, err := h.generateCodesUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		if !errors.IsAppError(err) {
			h.logger.Errorw("code generation failed", "error", err, "scope_type", req.ScopeType)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("codes generated", "count", len(result.Codes), "scope_type", req.ScopeType)
	utils.CreatedResponse(c, result, "codes generated successfully")
}

// ListCodes handles GET /admin/codes
func (h *CodeHandler) ListCodes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))

	result, err := h.listCodesUC.Execute(c.Request.Context(), usecases.ListCodesQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
