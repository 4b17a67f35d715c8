package controller

import (
	"errors"

	"gcse_prep_backend/internal/model"
	"gcse_prep_backend/internal/service"
	"gcse_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PredictionController struct {
	Predictions *service.PredictionService
}

func NewPredictionController(predictions *service.PredictionService) *PredictionController {
	return &PredictionController{Predictions: predictions}
}

// @Summary Grade predictions for all active enrollments
// @Tags predictions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/predictions [get]
func (c *PredictionController) GetPredictions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	predictions, err := c.Predictions.PredictAll(user.LearnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"predictions": predictions})
}

type SetTargetsRequest struct {
	TargetPaper model.PaperTier `json:"targetPaper"`
	TargetGrade int             `json:"targetGrade" binding:"required"`
}

// @Summary Set target paper and grade for an enrollment
// @Tags predictions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseSlug path string true "course slug"
// @Param body body SetTargetsRequest true "targets"
// @Success 200 {object} util.Response
// @Router /api/enrollments/{courseSlug}/target [put]
func (c *PredictionController) SetTargets(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseSlug := ctx.Param("courseSlug")

	var req SetTargetsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Predictions.SetTargets(user.LearnerID, courseSlug, req.TargetPaper, req.TargetGrade); err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{"success": true})
}
