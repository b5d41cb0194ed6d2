package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 课程大纲维护：模块与课时的增删改、排序
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

type moduleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type reorderRequest struct {
	NewIndex int `json:"newIndex" binding:"min=0"`
}

// ListModules godoc
// @Summary 课程大纲
// @Description 模块按 order_index 升序，附带课时数
// @Tags 大纲
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Success 200 {object} util.Response{data=[]repository.ModuleWithLessonCount} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{courseId}/modules [get]
func (c *ContentController) ListModules(ctx *gin.Context) {
	modules, err := c.ContentService.LoadModules(ctx.Param("courseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// ListLessons godoc
// @Summary 模块课时列表
// @Tags 大纲
// @Produce  json
// @Param   moduleId path string true "模块 ID"
// @Success 200 {object} util.Response{data=[]model.Lesson} "成功"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/modules/{moduleId}/lessons [get]
func (c *ContentController) ListLessons(ctx *gin.Context) {
	_, lessons, err := c.ContentService.Expand(service.NewTreeState(), ctx.Param("moduleId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// CreateModule godoc
// @Summary 新增模块
// @Description 序号自动取同级最大值加一
// @Tags 大纲
// @Accept  json
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Param   body body moduleRequest true "模块信息"
// @Success 201 {object} util.Response{data=model.CourseModule} "创建成功"
// @Security BearerAuth
// @Router /api/instructor/courses/{courseId}/modules [post]
func (c *ContentController) CreateModule(ctx *gin.Context) {
	var req moduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.CreateModule(ctx.Param("courseId"), req.Title, req.Description)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary 更新模块
// @Tags 大纲
// @Accept  json
// @Produce  json
// @Param   moduleId path string true "模块 ID"
// @Param   body body moduleRequest true "模块信息"
// @Success 200 {object} util.Response{data=model.CourseModule} "成功"
// @Security BearerAuth
// @Router /api/instructor/modules/{moduleId} [put]
func (c *ContentController) UpdateModule(ctx *gin.Context) {
	var req moduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ContentService.UpdateModule(ctx.Param("moduleId"), req.Title, req.Description)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary 删除模块
// @Description 级联删除模块下全部课时与测验
// @Tags 大纲
// @Produce  json
// @Param   moduleId path string true "模块 ID"
// @Success 200 {object} util.Response "成功"
// @Security BearerAuth
// @Router /api/instructor/modules/{moduleId} [delete]
func (c *ContentController) DeleteModule(ctx *gin.Context) {
	if err := c.ContentService.DeleteModule(ctx.Param("moduleId")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ReorderModule godoc
// @Summary 移动模块位置
// @Tags 大纲
// @Accept  json
// @Produce  json
// @Param   moduleId path string true "模块 ID"
// @Param   body body reorderRequest true "目标位置"
// @Success 200 {object} util.Response "成功"
// @Security BearerAuth
// @Router /api/instructor/modules/{moduleId}/reorder [put]
func (c *ContentController) ReorderModule(ctx *gin.Context) {
	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.ReorderModule(ctx.Param("moduleId"), req.NewIndex); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateLesson godoc
// @Summary 新增课时
// @Tags 大纲
// @Accept  json
// @Produce  json
// @Param   moduleId path string true "模块 ID"
// @Param   body body service.LessonInput true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson} "创建成功"
// @Security BearerAuth
// @Router /api/instructor/modules/{moduleId}/lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	var input service.LessonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.CreateLesson(ctx.Param("moduleId"), input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary 更新课时
// @Tags 大纲
// @Accept  json
// @Produce  json
// @Param   lessonId path string true "课时 ID"
// @Param   body body service.LessonInput true "课时信息"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Security BearerAuth
// @Router /api/instructor/lessons/{lessonId} [put]
func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	var input service.LessonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.UpdateLesson(ctx.Param("lessonId"), input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Tags 大纲
// @Produce  json
// @Param   lessonId path string true "课时 ID"
// @Success 200 {object} util.Response "成功"
// @Security BearerAuth
// @Router /api/instructor/lessons/{lessonId} [delete]
func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	if err := c.ContentService.DeleteLesson(ctx.Param("lessonId")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ReorderLesson godoc
// @Summary 移动课时位置
// @Tags 大纲
// @Accept  json
// @Produce  json
// @Param   lessonId path string true "课时 ID"
// @Param   body body reorderRequest true "目标位置"
// @Success 200 {object} util.Response "成功"
// @Security BearerAuth
// @Router /api/instructor/lessons/{lessonId}/reorder [put]
func (c *ContentController) ReorderLesson(ctx *gin.Context) {
	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.ReorderLesson(ctx.Param("lessonId"), req.NewIndex); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
