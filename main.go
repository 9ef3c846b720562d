package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"filedrop/backend/api/middleware"
	"filedrop/backend/api/route"
	"filedrop/backend/common"
	"filedrop/backend/library/storage"
	"filedrop/backend/model"

	"github.com/gin-gonic/gin"
)

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog(common.SystemName + " " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := common.InitConfig(); err != nil {
		common.SysError("failed to load config file: " + err.Error())
	}
	common.InitSecrets()

	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.SysError("failed to close database: " + err.Error())
		}
	}()

	// Storage misconfiguration is surfaced per-request, not at startup, so
	// the metadata surface stays usable while an operator fixes it.
	if err := storage.InitS3Gateway(context.Background()); err != nil {
		common.SysError("object storage unavailable: " + err.Error())
	}

	server := gin.Default()
	server.Use(middleware.CORS())

	route.SetRouter(server)
	server.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(404, gin.H{
				"success": false,
				"message": "API route not found",
			})
		} else {
			c.JSON(404, gin.H{
				"success": false,
				"message": "not found",
			})
		}
	})

	port := strconv.Itoa(*common.Port)
	common.SysLog("server listening on port: " + port)

	setupGracefulShutdown()

	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

// setupGracefulShutdown registers signal handlers to ensure clean shutdown.
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysError("failed to close database: " + err.Error())
		}
		os.Exit(0)
	}()
}
