package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtside/internal/application/access/usecases"
	"courtside/internal/shared/constants"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/utils"
)

// ContentHandler serves content resolution requests: given a course locator
// and whatever identity the caller presented, it returns the access decision
// and the matching content tree.
type ContentHandler struct {
	getContentUC *usecases.GetContentUseCase
	logger       logger.Interface
}

func NewContentHandler(getContentUC *usecases.GetContentUseCase, logger logger.Interface) *ContentHandler {
	return &ContentHandler{
		getContentUC: getContentUC,
		logger:       logger,
	}
}

// GetContent handles GET /content/courses/:course_id
// Query parameters narrow the locator:
//   - package_id: package context the caller browsed through
//   - age_group_id: age group within the course
//   - card_id: specific player card
//   - month: training month number within the age group
//   - video_id: specific video
func (h *ContentHandler) GetContent(c *gin.Context) {
	courseID, err := utils.ParseUintParam(c, "course_id", "course")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	packageID, err := utils.ParseUintQuery(c, "package_id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ageGroupID, err := utils.ParseUintQuery(c, "age_group_id", "age group")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	cardID, err := utils.ParseUintQuery(c, "card_id", "player card")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	videoID, err := utils.ParseUintQuery(c, "video_id", "video")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	monthNumber := 0
	if raw := c.Query("month"); raw != "" {
		monthNumber, err = strconv.Atoi(raw)
		if err != nil || monthNumber < 1 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid month number"))
			return
		}
	}

	accountID, authenticated := accountFromContext(c)

	query := usecases.GetContentQuery{
		AccountID:     accountID,
		Authenticated: authenticated,
		IsAdmin:       c.GetBool(constants.ContextKeyIsAdmin),
		DeviceID:      c.GetString(constants.ContextKeyDeviceID),
		CourseID:      courseID,
		PackageID:     packageID,
		AgeGroupID:    ageGroupID,
		CardID:        cardID,
		MonthNumber:   monthNumber,
		VideoID:       videoID,
	}

	result, err := h.getContentUC.Execute(c.Request.Context(), query)
	if err != nil {
		if !errors.IsAppError(err) {
			h.logger.Errorw("content resolution failed", "error", err, "course_id", courseID)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// accountFromContext reads the authenticated account, if any.
func accountFromContext(c *gin.Context) (uint, bool) {
	raw, exists := c.Get(constants.ContextKeyAccountID)
	if !exists {
		return 0, false
	}
	accountID, ok := raw.(uint)
	if !ok || accountID == 0 {
		return 0, false
	}
	return accountID, true
}
