package handler

import (
	"net/http"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/model"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
)

// statusForCode maps service error kinds to HTTP statuses, per the error
// taxonomy.
func statusForCode(code string) int {
	switch code {
	case mcerrors.ErrInvalidInput, mcerrors.ErrQuotaExceeded:
		return http.StatusBadRequest
	case mcerrors.ErrUnauthorized, mcerrors.ErrInvalidToken, mcerrors.ErrInvalidCredentials:
		return http.StatusUnauthorized
	case mcerrors.ErrForbidden:
		return http.StatusForbidden
	case mcerrors.ErrNotFound, mcerrors.ErrFileNotFound, mcerrors.ErrUserNotFound, mcerrors.ErrPlanNotFound:
		return http.StatusNotFound
	case mcerrors.ErrFileGone:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func respServiceError(c *gin.Context, err error) {
	code := service.ErrCode(err)
	status := statusForCode(code)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal detail stays in the log, not the response.
		common.SysError("request failed: " + err.Error())
		msg = "internal server error"
	}
	common.RespError(c, status, code, msg)
}

// currentUser loads the authenticated user set by the JWT middleware.
func currentUser(c *gin.Context) (*model.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil, false
	}
	id, ok := userID.(int64)
	if !ok {
		return nil, false
	}
	user, err := model.GetUserById(id)
	if err != nil {
		return nil, false
	}
	return user, true
}

// optionalUser is currentUser for routes that accept anonymous callers.
func optionalUser(c *gin.Context) *model.User {
	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	return user
}
