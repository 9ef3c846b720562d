package handler

import (
	"net/http"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/model"

	"github.com/gin-gonic/gin"
)

func GetAllPlans(c *gin.Context) {
	plans, err := model.GetAllPlans()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, err.Error())
		return
	}
	common.RespSuccess(c, plans)
}

type createPlanRequest struct {
	Name           string `json:"name" binding:"required"`
	MaxFileSize    int64  `json:"max_file_size" binding:"required,gt=0"`
	RetentionHours int    `json:"retention_hours" binding:"required,gt=0"`
	PriceCents     int64  `json:"price_cents" binding:"gte=0"`
}

// CreatePlan adds a plan to the catalog. Plans are never deleted; existing
// file expirations are not recomputed when plans change.
func CreatePlan(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, mcerrors.ErrInvalidInput,
			"name, max_file_size and retention_hours are required")
		return
	}
	plan := model.Plan{
		Name:           req.Name,
		MaxFileSize:    req.MaxFileSize,
		RetentionHours: req.RetentionHours,
		PriceCents:     req.PriceCents,
	}
	if err := plan.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, mcerrors.ErrInternalServer, "failed to create plan")
		return
	}
	common.RespSuccess(c, plan)
}
