package controller

import (
	"gcse_prep_backend/internal/service"
	"gcse_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *service.ProgressService
}

func NewProgressController(progress *service.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

type UpdateProgressRequest struct {
	CourseSlug string `json:"courseSlug" binding:"required"`
	LessonID   uint   `json:"lessonId" binding:"required"`
	LessonSlug string `json:"lessonSlug" binding:"required"`
}

// @Summary Recompute a lesson's progress rollup
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProgressRequest true "lesson reference"
// @Success 200 {object} util.Response
// @Router /api/progress/update [post]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stats, err := c.Progress.Recompute(user.LearnerID, req.CourseSlug, req.LessonID, req.LessonSlug)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"stats": stats})
}

// @Summary Mark a lesson's content as completed
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProgressRequest true "lesson reference"
// @Success 200 {object} util.Response
// @Router /api/lessons/complete [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Progress.CompleteLesson(user.LearnerID, req.CourseSlug, req.LessonID, req.LessonSlug); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"success": true})
}

// @Summary Get the learner's study streak in days
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/progress/streak [get]
func (c *ProgressController) GetStreak(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	streak, err := c.Progress.Streak(ctx.Request.Context(), user.LearnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"streak": streak})
}
