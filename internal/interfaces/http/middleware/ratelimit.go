package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courtside/internal/infrastructure/ratelimit"
	"courtside/internal/shared/constants"
	"courtside/internal/shared/logger"
	"courtside/internal/shared/utils"
)

// RedeemRateLimit throttles redemption attempts per device, falling back to
// the client IP when no device identifier resolved. The limiter keys on the
// same identifier a guesser would have to rotate.
type RedeemRateLimit struct {
	limiter ratelimit.RateLimiter
	limits  ratelimit.Limits
	logger  logger.Interface
}

func NewRedeemRateLimit(limiter ratelimit.RateLimiter, limits ratelimit.Limits, logger logger.Interface) *RedeemRateLimit {
	return &RedeemRateLimit{
		limiter: limiter,
		limits:  limits,
		logger:  logger,
	}
}

func (m *RedeemRateLimit) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(constants.ContextKeyDeviceID)
		if key == "" {
			key = c.ClientIP()
		}

		allowed, err := m.limiter.Allow("redeem:"+key, m.limits)
		if err != nil {
			// A limiter outage must not take redemption down with it.
			m.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many redemption attempts, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
