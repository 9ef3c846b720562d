package handler

import (
	"net/http"
	"time"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/model"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2"`
	PlanId   *int64 `json:"plan_id"`
}

// Register creates an account bound to the requested plan, or the default
// plan when none is given.
func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorWrap(c, http.StatusBadRequest, mcerrors.ErrInvalidInput, "invalid registration payload", err)
		return
	}
	if model.IsEmailTaken(req.Email) {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrEmailTaken, "email already registered")
		return
	}

	planId := req.PlanId
	if planId == nil {
		plan, err := model.GetPlanByName(common.DefaultPlanName)
		if err != nil {
			common.RespError(c, http.StatusInternalServerError, mcerrors.ErrConfiguration,
				"default plan is not configured")
			return
		}
		planId = &plan.Id
	} else if _, err := model.GetPlanById(*planId); err != nil {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrPlanNotFound, "plan not found")
		return
	}

	user := model.User{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.Name,
		Role:        common.RoleUser,
		PlanId:      planId,
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, "failed to create user")
		return
	}
	common.RespSuccessWithMsg(c, "user created successfully", gin.H{
		"id":      user.Id,
		"email":   user.Email,
		"name":    user.DisplayName,
		"role":    user.Role,
		"plan_id": user.PlanId,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrEmptyCredentials, "email and password are required")
		return
	}
	user := model.User{
		Email:    req.Email,
		Password: req.Password,
	}
	if err := user.ValidateAndFill(); err != nil {
		common.RespError(c, http.StatusUnauthorized, mcerrors.ErrInvalidCredentials, "invalid email or password")
		return
	}

	accessToken, err := service.GenerateToken(&user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, "failed to generate token")
		return
	}
	refreshToken, err := service.GenerateRefreshToken(&user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, "failed to generate token")
		return
	}
	common.RespSuccess(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrInvalidInput, "refresh_token is required")
		return
	}
	claims, err := service.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		common.RespError(c, http.StatusUnauthorized, mcerrors.ErrInvalidToken, "refresh token is invalid or expired")
		return
	}
	user, err := model.GetUserById(claims.UserID)
	if err != nil {
		common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUserNotFound, "user not found")
		return
	}
	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, "failed to generate token")
		return
	}
	common.RespSuccess(c, gin.H{"access_token": accessToken})
}

// Logout blacklists the presented token until it would have expired anyway.
// Without Redis the token simply ages out.
func Logout(c *gin.Context) {
	if common.RedisEnabled {
		if tokenString := c.GetString("token"); tokenString != "" {
			common.RDB.Set(c, "jwt:blacklist:"+tokenString, "1", 24*time.Hour)
		}
	}
	common.RespSuccessStr(c, "logged out")
}
