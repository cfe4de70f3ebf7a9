package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/shared/constants"
)

func deviceEngine(captured *string) *gin.Engine {
	engine := gin.New()
	engine.GET("/probe", DeviceID(), func(c *gin.Context) {
		*captured = c.GetString(constants.ContextKeyDeviceID)
		c.Status(http.StatusOK)
	})
	return engine
}

func TestDeviceID_HeaderWins(t *testing.T) {
	var captured string
	engine := deviceEngine(&captured)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(constants.HeaderXDeviceID, "app-device-1")
	req.AddCookie(&http.Cookie{Name: constants.CookieDeviceID, Value: "cookie-device"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "app-device-1", captured)
	assert.Empty(t, w.Result().Cookies(), "no new cookie when an id was supplied")
}

func TestDeviceID_CookieFallback(t *testing.T) {
	var captured string
	engine := deviceEngine(&captured)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieDeviceID, Value: "cookie-device"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "cookie-device", captured)
}

func TestDeviceID_MintsCookieForNewBrowser(t *testing.T) {
	var captured string
	engine := deviceEngine(&captured)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.NotEmpty(t, captured)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.CookieDeviceID, cookies[0].Name)
	assert.Equal(t, captured, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, deviceCookieMaxAge, cookies[0].MaxAge)
}
