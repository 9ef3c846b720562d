package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the standard envelope for every JSON endpoint. Code carries
// a machine-readable error kind on failures and is omitted on success.
type APIResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	RFC3339MilliZ = "2006-01-02T15:04:05.000Z07:00"
)

func RespSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "",
		Data:    data,
	})
}

func RespSuccessStr(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: msg,
	})
}

func RespSuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// RespError responds with an error kind code and a human-readable message.
func RespError(c *gin.Context, statusCode int, code string, msg string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Code:    code,
		Message: msg,
	})
}

// RespErrorWrap is RespError with an underlying error appended to the message.
func RespErrorWrap(c *gin.Context, statusCode int, code string, msg string, err error) {
	errMsg := msg
	if err != nil {
		errMsg = msg + ": " + err.Error()
	}
	c.JSON(statusCode, APIResponse{
		Success: false,
		Code:    code,
		Message: errMsg,
	})
}

func FormatTime(t time.Time) string {
	return t.Format(RFC3339MilliZ)
}
