package handler

import (
	"filedrop/backend/common"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
)

// CleanupExpired runs one expiration sweep. The route is guarded by
// middleware.CronAuth; the external scheduler is the only caller.
func CleanupExpired(c *gin.Context) {
	report, err := service.CleanupExpiredFiles(c.Request.Context())
	if err != nil {
		respServiceError(c, err)
		return
	}
	common.RespSuccess(c, report)
}
