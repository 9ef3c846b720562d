package handler

import (
	"net/http"

	"filedrop/backend/common"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
)

// GetPublicFileMeta serves anonymous metadata reads keyed by public token.
// Deleted files 404; expired files still render, expiry is just a field.
func GetPublicFileMeta(c *gin.Context) {
	meta, err := service.ResolveMetadata(c.Param("token"))
	if err != nil {
		respServiceError(c, err)
		return
	}
	common.RespSuccess(c, meta)
}

// DownloadFile resolves a public token, counts the request and redirects the
// caller to a 5-minute signed GET URL. Expired files are 410, deleted or
// unknown tokens 404.
func DownloadFile(c *gin.Context) {
	file, err := service.ResolveForDownload(c.Param("token"))
	if err != nil {
		respServiceError(c, err)
		return
	}
	downloadURL, err := service.IssueDownload(c.Request.Context(), file)
	if err != nil {
		respServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, downloadURL)
}
