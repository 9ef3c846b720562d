package handler

import (
	"net/http"
	"strconv"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
)

// GetMyFiles lists the authenticated caller's non-deleted files with their
// shareable links.
func GetMyFiles(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUnauthorized, "not logged in")
		return
	}
	files, err := service.ListOwnerFiles(user)
	if err != nil {
		respServiceError(c, err)
		return
	}
	common.RespSuccess(c, files)
}

// DeleteFile tombstones a file. Owner or admin only; storage cleanup is
// best-effort.
func DeleteFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUnauthorized, "not logged in")
		return
	}
	fileId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrInvalidInput, "invalid file id")
		return
	}
	if err := service.DeleteFile(c.Request.Context(), user, fileId); err != nil {
		respServiceError(c, err)
		return
	}
	common.RespSuccessStr(c, "file deleted")
}

// RestoreFile clears a tombstone. Admin escape hatch.
func RestoreFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUnauthorized, "not logged in")
		return
	}
	fileId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrInvalidInput, "invalid file id")
		return
	}
	if err := service.RestoreFile(user, fileId); err != nil {
		respServiceError(c, err)
		return
	}
	common.RespSuccessStr(c, "file restored")
}
