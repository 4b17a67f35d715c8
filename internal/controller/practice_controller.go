package controller

import (
	"errors"

	"gcse_prep_backend/internal/model"
	"gcse_prep_backend/internal/service"
	"gcse_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	Sessions *service.SessionService
	Sampler  *service.SamplerService
}

func NewPracticeController(sessions *service.SessionService, sampler *service.SamplerService) *PracticeController {
	return &PracticeController{Sessions: sessions, Sampler: sampler}
}

type StartSessionRequest struct {
	CourseSlug   string             `json:"courseSlug" binding:"required"`
	LessonID     uint               `json:"lessonId" binding:"required"`
	LessonSlug   string             `json:"lessonSlug" binding:"required"`
	PracticeMode model.PracticeMode `json:"practiceMode" binding:"required"`
}

// @Summary Start a practice session
// @Tags practice
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartSessionRequest true "session parameters"
// @Success 201 {object} util.Response
// @Router /api/practice/sessions [post]
func (c *PracticeController) StartSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Sessions.Start(ctx.Request.Context(), user.LearnerID, req.CourseSlug, req.LessonID, req.LessonSlug, req.PracticeMode)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidMode):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrNoWeakQuestions):
			// Guidance, not a fault: the learner has nothing to revisit.
			util.Error(ctx, 409, "No weak questions yet - practice a lesson first, then come back to review what you missed")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

type SubmitAnswerRequest struct {
	QuestionID       string `json:"questionId" binding:"required"`
	Answer           string `json:"answer"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
}

// @Summary Submit an answer for a session question
// @Tags practice
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "session ID"
// @Param body body SubmitAnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/practice/sessions/{id}/answers [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := ctx.Param("id")

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Sessions.SubmitAnswer(ctx.Request.Context(), user.LearnerID, sessionID, req.QuestionID, req.Answer, req.TimeTakenSeconds)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidSession):
			util.BadRequest(ctx, "session is already completed")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

type CompleteSessionRequest struct {
	QuestionsAttempted *int `json:"questionsAttempted" binding:"required"`
	QuestionsCorrect   *int `json:"questionsCorrect" binding:"required"`
	DurationSeconds    *int `json:"durationSeconds" binding:"required"`
}

// @Summary Complete a practice session
// @Tags practice
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "session ID"
// @Param body body CompleteSessionRequest true "final tallies"
// @Success 200 {object} util.Response
// @Router /api/practice/sessions/{id}/complete [post]
func (c *PracticeController) CompleteSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := ctx.Param("id")

	var req CompleteSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Sessions.Complete(ctx.Request.Context(), user.LearnerID, sessionID, *req.QuestionsAttempted, *req.QuestionsCorrect, *req.DurationSeconds)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary List question ids whose latest attempt was wrong
// @Tags practice
// @Produce json
// @Security ApiKeyAuth
// @Param courseSlug query string true "course slug"
// @Param lessonId query int true "lesson ID"
// @Success 200 {object} util.Response
// @Router /api/practice/weak-questions [get]
func (c *PracticeController) GetWeakQuestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseSlug := ctx.Query("courseSlug")
	lessonID := util.MustParseUint(ctx.Query("lessonId"))
	if courseSlug == "" || lessonID == 0 {
		util.BadRequest(ctx, "courseSlug and lessonId are required")
		return
	}

	ids, err := c.Sampler.WeakQuestionIDs(user.LearnerID, courseSlug, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if ids == nil {
		ids = []string{}
	}
	util.Success(ctx, ids)
}
