package common

import (
	"flag"
	"os"
	"strconv"

	"github.com/google/uuid"
)

var Version = "v0.3.1"
var SystemName = "FileDrop"

var Port = flag.Int("port", 3000, "the listening port")
var PrintVersion = flag.Bool("version", false, "print version and exit")
var PrintHelpFlag = flag.Bool("help", false, "print help and exit")

var SQLitePath = GetEnvOrDefaultString("SQLITE_PATH", "data/filedrop.db")

// BaseURL is the externally visible origin used to build shareable links.
var BaseURL = GetEnvOrDefaultString("BASE_URL", "http://localhost:3000")

var JWTSecret = os.Getenv("JWT_SECRET")
var JWTRefreshSecret = os.Getenv("JWT_REFRESH_SECRET")

// CronSecret guards the cleanup trigger endpoint. The sweep refuses to run
// when it is unset.
var CronSecret = os.Getenv("CRON_SECRET")

// DefaultPlanName is the plan charged for anonymous uploads.
var DefaultPlanName = GetEnvOrDefaultString("FREE_PLAN_NAME", "Free")

// Object storage settings. S3-compatible backends (R2, minio) set S3_ENDPOINT.
var (
	S3Endpoint        = os.Getenv("S3_ENDPOINT")
	S3Region          = GetEnvOrDefaultString("S3_REGION", "auto")
	S3Bucket          = os.Getenv("S3_BUCKET")
	S3AccessKeyID     = os.Getenv("S3_ACCESS_KEY_ID")
	S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
)

const (
	// PresignPutExpiry bounds the direct-to-storage upload window.
	PresignPutExpirySeconds = 15 * 60
	// PresignGetExpiry bounds a handed-out download link.
	PresignGetExpirySeconds = 5 * 60
	// PermanenceThresholdHours: plans retaining this long or longer produce
	// permanent files with no expiration clock.
	PermanenceThresholdHours = 720
)

const (
	RoleUser  = 1
	RoleAdmin = 10
)

var ItemsPerPage = GetEnvOrDefaultInt("ITEMS_PER_PAGE", 10)

func GetEnvOrDefaultString(env string, defaultValue string) string {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	return os.Getenv(env)
}

func GetEnvOrDefaultInt(env string, defaultValue int) int {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	num, err := strconv.Atoi(os.Getenv(env))
	if err != nil {
		SysError("failed to parse " + env + ": " + err.Error())
		return defaultValue
	}
	return num
}

// InitSecrets fills in JWT secrets when the environment and config file left
// them empty. A fresh random secret invalidates outstanding tokens on
// restart, which is acceptable for a single-node deployment.
func InitSecrets() {
	if JWTSecret == "" {
		JWTSecret = uuid.New().String()
		SysLog("JWT_SECRET not set, generated a random one")
	}
	if JWTRefreshSecret == "" {
		JWTRefreshSecret = JWTSecret
	}
}

func PrintHelp() {
	println(SystemName + " " + Version)
	println("Usage: filedrop [--port <port>] [--version] [--help]")
}
