package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizController 测验定义的编辑与读取
type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

type saveQuizRequest struct {
	QuizID string            `json:"quizId"`
	Draft  service.QuizDraft `json:"draft" binding:"required"`
}

// SaveQuiz godoc
// @Summary 保存测验定义
// @Description 全量替换：校验通过后旧题目连同选项删除并按草稿重插
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   lessonId path string true "课时 ID"
// @Param   body body saveQuizRequest true "测验草稿，quizId 为空表示新建"
// @Success 200 {object} util.Response{data=model.Quiz} "保存成功"
// @Failure 400 {object} util.Response "草稿校验失败"
// @Failure 404 {object} util.Response "课时或测验不存在"
// @Security BearerAuth
// @Router /api/instructor/lessons/{lessonId}/quiz [put]
func (c *QuizController) SaveQuiz(ctx *gin.Context) {
	var req saveQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Save(ctx.Param("lessonId"), req.QuizID, req.Draft)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// GetQuiz godoc
// @Summary 课时测验定义
// @Description 含题目与选项，编辑端使用
// @Tags 测验
// @Produce  json
// @Param   lessonId path string true "课时 ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 404 {object} util.Response "该课时没有测验"
// @Security BearerAuth
// @Router /api/instructor/lessons/{lessonId}/quiz [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.GetForLesson(ctx.Param("lessonId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}
