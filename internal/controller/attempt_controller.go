package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AttemptController 学员答题流程：开始、作答、提交
type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// StartAttempt godoc
// @Summary 开始答题
// @Description 创建答题记录并返回题目（不含正确答案标记）；设有时限则开始倒计时
// @Tags 答题
// @Produce  json
// @Param   quizId path string true "测验 ID"
// @Success 201 {object} util.Response{data=service.AttemptView} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Security BearerAuth
// @Router /api/quizzes/{quizId}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.AttemptService.Start(claims.UserID, ctx.Param("quizId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

type selectAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	AnswerID   string `json:"answerId" binding:"required"`
}

// SelectAnswer godoc
// @Summary 记录作答
// @Description 单选：同一题的新选择替换旧选择
// @Tags 答题
// @Accept  json
// @Produce  json
// @Param   id path string true "答题记录 ID"
// @Param   body body selectAnswerRequest true "所选选项"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "答题记录不存在"
// @Security BearerAuth
// @Router /api/attempts/{id}/answers [put]
func (c *AttemptController) SelectAnswer(ctx *gin.Context) {
	var req selectAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AttemptService.SelectAnswer(ctx.Param("id"), req.QuestionID, req.AnswerID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SubmitAttempt godoc
// @Summary 提交答卷
// @Description 重复提交返回第一次的成绩，不会二次计分
// @Tags 答题
// @Produce  json
// @Param   id path string true "答题记录 ID"
// @Success 200 {object} util.Response{data=service.AttemptResult} "成绩"
// @Failure 404 {object} util.Response "答题记录不存在"
// @Security BearerAuth
// @Router /api/attempts/{id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	result, err := c.AttemptService.Submit(ctx.Param("id"))
	if err != nil {
		if result != nil {
			// 成绩已算出，落库失败只记日志，学员照常拿到分数
			util.LogError(err)
			util.Success(ctx, result)
			return
		}
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ListAttempts godoc
// @Summary 历史答题记录
// @Description 当前学员在该测验下的全部答题记录，按开始时间倒序
// @Tags 答题
// @Produce  json
// @Param   quizId path string true "测验 ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Security BearerAuth
// @Router /api/quizzes/{quizId}/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.AttemptService.History(claims.UserID, ctx.Param("quizId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// RemainingSeconds godoc
// @Summary 剩余答题时间
// @Tags 答题
// @Produce  json
// @Param   id path string true "答题记录 ID"
// @Success 200 {object} util.Response{data=object} "剩余秒数，-1 表示不限时"
// @Security BearerAuth
// @Router /api/attempts/{id}/remaining [get]
func (c *AttemptController) RemainingSeconds(ctx *gin.Context) {
	remaining, err := c.AttemptService.RemainingSeconds(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"remainingSeconds": remaining})
}
