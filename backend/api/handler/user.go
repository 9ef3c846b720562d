package handler

import (
	"net/http"
	"strconv"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/model"

	"github.com/gin-gonic/gin"
)

func GetSelf(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUnauthorized, "not logged in")
		return
	}
	common.RespSuccess(c, user)
}

type updateSelfRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// UpdateSelf changes the caller's display name and/or password.
func UpdateSelf(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		common.RespError(c, http.StatusUnauthorized, mcerrors.ErrUnauthorized, "not logged in")
		return
	}
	var req updateSelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespErrorWrap(c, http.StatusBadRequest, mcerrors.ErrInvalidInput, "invalid profile payload", err)
		return
	}
	if req.Name == "" && req.Password == "" {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrInvalidInput, "nothing to update")
		return
	}
	if req.Name != "" {
		user.DisplayName = req.Name
	}
	updatePassword := req.Password != ""
	if updatePassword {
		user.Password = req.Password
	}
	if err := user.Update(updatePassword); err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, "failed to update user")
		return
	}
	common.RespSuccess(c, user)
}

// GetAllUsers returns a page of users, newest first. Admin only.
func GetAllUsers(c *gin.Context) {
	p, _ := strconv.Atoi(c.Query("p"))
	if p < 0 {
		p = 0
	}
	users, err := model.GetAllUsers(p*common.ItemsPerPage, common.ItemsPerPage)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, err.Error())
		return
	}
	common.RespSuccess(c, users)
}
