package route

import (
	"filedrop/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetRouter(route *gin.Engine) {
	route.Use(middleware.GzipDecode())
	route.Use(middleware.GzipEncode())

	SetApiRouter(route)
}
