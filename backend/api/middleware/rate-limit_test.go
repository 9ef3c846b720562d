package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimitRejectsWithDedicatedCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// A bucket that never refills: the first request drains it.
	store := newLimiterStore(rate.Limit(0), 1)
	router.GET("/ping", rateLimitMiddleware(store), func(c *gin.Context) {
		common.RespSuccessStr(c, "pong")
	})

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, mcerrors.ErrRateLimited, resp.Code)
}
