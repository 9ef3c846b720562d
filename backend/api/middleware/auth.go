package middleware

import (
	"net/http"
	"strings"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
)

func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func isBlacklisted(c *gin.Context, tokenString string) bool {
	if !common.RedisEnabled {
		return false
	}
	blacklisted, _ := common.RDB.Exists(c, "jwt:blacklist:"+tokenString).Result()
	return blacklisted > 0
}

func setIdentity(c *gin.Context, claims *service.Claims, tokenString string) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
	c.Set("token", tokenString)
}

// JWTAuth requires a valid bearer token and rejects blacklisted ones.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUnauthorized,
				"Authorization header must be Bearer {token}")
			c.Abort()
			return
		}
		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			common.RespError(c, http.StatusUnauthorized, mcerrors.ErrInvalidToken, "token is invalid or expired")
			c.Abort()
			return
		}
		if isBlacklisted(c, tokenString) {
			common.RespError(c, http.StatusUnauthorized, mcerrors.ErrInvalidToken, "token has been invalidated")
			c.Abort()
			return
		}
		setIdentity(c, claims, tokenString)
		c.Next()
	}
}

// OptionalJWTAuth sets the identity when a valid bearer token is present and
// lets the request through anonymously otherwise. Upload reservations accept
// both.
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if ok {
			if claims, err := service.ValidateToken(tokenString); err == nil && !isBlacklisted(c, tokenString) {
				setIdentity(c, claims, tokenString)
			}
		}
		c.Next()
	}
}

// AdminAuth is JWTAuth plus an admin role check.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUnauthorized,
				"Authorization header must be Bearer {token}")
			c.Abort()
			return
		}
		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			common.RespError(c, http.StatusUnauthorized, mcerrors.ErrInvalidToken, "token is invalid or expired")
			c.Abort()
			return
		}
		if isBlacklisted(c, tokenString) {
			common.RespError(c, http.StatusUnauthorized, mcerrors.ErrInvalidToken, "token has been invalidated")
			c.Abort()
			return
		}
		if claims.Role < common.RoleAdmin {
			common.RespError(c, http.StatusForbidden, mcerrors.ErrForbidden, "admin role required")
			c.Abort()
			return
		}
		setIdentity(c, claims, tokenString)
		c.Next()
	}
}

// CronAuth guards the cleanup trigger with the shared cron secret.
func CronAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if common.CronSecret == "" {
			common.RespError(c, http.StatusInternalServerError, mcerrors.ErrConfiguration,
				"CRON_SECRET is not configured")
			c.Abort()
			return
		}
		if c.GetHeader("Authorization") != "Bearer "+common.CronSecret {
			common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUnauthorized, "invalid cron secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
