package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courtside/internal/shared/constants"
)

const deviceCookieMaxAge = 2 * 365 * 24 * 60 * 60

// DeviceID resolves the caller's device identifier. Clients may send it in
// the X-Device-ID header; browsers get a long-lived cookie minted on first
// contact. The identifier feeds device tracking and device bans, so every
// content request carries one.
func DeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(constants.HeaderXDeviceID)

		if deviceID == "" {
			if cookie, err := c.Cookie(constants.CookieDeviceID); err == nil {
				deviceID = cookie
			}
		}

		if deviceID == "" {
			deviceID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(constants.CookieDeviceID, deviceID, deviceCookieMaxAge, "/", "", false, true)
		}

		c.Set(constants.ContextKeyDeviceID, deviceID)
		c.Next()
	}
}
