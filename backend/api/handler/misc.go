package handler

import (
	"net/http"
	"time"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/model"

	"github.com/gin-gonic/gin"
)

func GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"version":     common.Version,
		"start_time":  common.FormatTime(startTime),
		"server_time": common.FormatTime(time.Now()),
	})
}

var startTime = time.Now()

// GetStats reports registry aggregates for the admin dashboard.
func GetStats(c *gin.Context) {
	stats, err := model.GetFileStats(time.Now())
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, err.Error())
		return
	}
	common.RespSuccess(c, stats)
}
