package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgressController 学习进度：课时完成标记与课程进度查询
type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// MarkLessonComplete godoc
// @Summary 标记课时完成
// @Description 幂等操作，首次完成时间不被覆盖；完成后自动重算课程进度
// @Tags 进度
// @Produce  json
// @Param   lessonId path string true "课时 ID"
// @Success 200 {object} util.Response{data=model.LessonProgress} "成功"
// @Failure 404 {object} util.Response "课时不存在或未选课"
// @Security BearerAuth
// @Router /api/lessons/{lessonId}/complete [post]
func (c *ProgressController) MarkLessonComplete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.MarkLessonComplete(claims.UserID, ctx.Param("lessonId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// GetCourseProgress godoc
// @Summary 课程学习进度
// @Tags 进度
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Success 200 {object} util.Response{data=service.CourseProgress} "成功"
// @Failure 404 {object} util.Response "未选课"
// @Security BearerAuth
// @Router /api/courses/{courseId}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetCourseProgress(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
