package route

import (
	"filedrop/backend/api/handler"
	"filedrop/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(route *gin.Engine) {
	apiRouter := route.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", handler.GetStatus)

		// Authentication routes
		authRoutes := apiRouter.Group("/auth")
		{
			authRoutes.POST("/register", middleware.CriticalRateLimit(), handler.Register)
			authRoutes.POST("/login", middleware.CriticalRateLimit(), handler.Login)
			authRoutes.POST("/refresh", middleware.CriticalRateLimit(), handler.RefreshToken)
			authRoutes.POST("/logout", middleware.JWTAuth(), handler.Logout)
		}

		// Upload handshake. Reservation accepts anonymous callers on the
		// default plan; confirmation is keyed by file id only.
		apiRouter.POST("/upload", middleware.CriticalRateLimit(), middleware.OptionalJWTAuth(), handler.ReserveUpload)
		apiRouter.POST("/upload/complete", handler.CompleteUpload)

		// Public capability-token routes
		apiRouter.GET("/files/public/:token", handler.GetPublicFileMeta)
		apiRouter.GET("/f/:token", handler.DownloadFile)

		// Owner surface
		fileRoute := apiRouter.Group("/files")
		fileRoute.Use(middleware.JWTAuth())
		{
			fileRoute.GET("/", handler.GetMyFiles)
			fileRoute.DELETE("/:id", handler.DeleteFile)
		}

		// Self
		userRoute := apiRouter.Group("/user")
		userRoute.Use(middleware.JWTAuth())
		{
			userRoute.GET("/self", handler.GetSelf)
			userRoute.PUT("/self", handler.UpdateSelf)
		}

		// Admin surface
		adminRoute := apiRouter.Group("/admin")
		adminRoute.Use(middleware.AdminAuth())
		{
			adminRoute.GET("/plans", handler.GetAllPlans)
			adminRoute.POST("/plans", handler.CreatePlan)
			adminRoute.GET("/users", handler.GetAllUsers)
			adminRoute.GET("/stats", handler.GetStats)
			adminRoute.POST("/files/:id/restore", handler.RestoreFile)
		}

		// Expiration sweep, triggered by the external scheduler
		apiRouter.GET("/cron/cleanup", middleware.CronAuth(), handler.CleanupExpired)
	}
}
