package handler

import (
	"net/http"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
)

type reserveUploadRequest struct {
	Filename    string `json:"filename" binding:"required,safe_filename"`
	Size        int64  `json:"size" binding:"required"`
	ContentType string `json:"content_type"`
}

// ReserveUpload starts the two-phase upload: it validates the declared size
// against the caller's plan, persists the reservation and returns a
// 15-minute PUT capability for the direct-to-storage transfer.
func ReserveUpload(c *gin.Context) {
	var req reserveUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrInvalidInput, "filename and size are required")
		return
	}

	user := optionalUser(c)
	result, err := service.ReserveUpload(c.Request.Context(), user, req.Filename, req.Size, req.ContentType)
	if err != nil {
		respServiceError(c, err)
		return
	}
	common.RespSuccess(c, result)
}

type completeUploadRequest struct {
	FileId int64  `json:"file_id" binding:"required"`
	Size   *int64 `json:"size"`
}

// CompleteUpload confirms that the client finished the direct upload and
// returns the shareable public URL.
func CompleteUpload(c *gin.Context) {
	var req completeUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrInvalidInput, "file_id is required")
		return
	}

	publicURL, err := service.ConfirmUpload(req.FileId, req.Size)
	if err != nil {
		respServiceError(c, err)
		return
	}
	common.RespSuccess(c, gin.H{
		"public_url": publicURL,
		"file_id":    req.FileId,
	})
}
