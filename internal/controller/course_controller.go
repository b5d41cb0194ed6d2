package controller

import (
	"errors"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListCourses godoc
// @Summary 课程目录
// @Description 已发布课程分页列表
// @Tags 课程
// @Produce  json
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.CourseService.ListPublished(page, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetCourse godoc
// @Summary 课程详情（按 ID）
// @Tags 课程
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetByID(ctx.Param("courseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetCourseBySlug godoc
// @Summary 课程详情（按 slug，走缓存）
// @Tags 课程
// @Produce  json
// @Param   slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/catalog/{slug} [get]
func (c *CourseController) GetCourseBySlug(ctx *gin.Context) {
	course, err := c.CourseService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   body body service.CourseInput true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 409 {object} util.Response "slug 已被占用"
// @Security BearerAuth
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrSlugTaken) {
			util.Error(ctx, 409, "课程 slug 已被占用")
		} else {
			util.HandleServiceError(ctx, err)
		}
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Param   body body service.CourseInput true "课程信息"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Security BearerAuth
// @Router /api/instructor/courses/{courseId} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(ctx.Param("courseId"), input)
	if err != nil {
		if errors.Is(err, util.ErrSlugTaken) {
			util.Error(ctx, 409, "课程 slug 已被占用")
		} else {
			util.HandleServiceError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

type publishRequest struct {
	Published bool `json:"published"`
}

// PublishCourse godoc
// @Summary 上架/下架课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Param   body body publishRequest true "发布状态"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Security BearerAuth
// @Router /api/instructor/courses/{courseId}/publish [put]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	var req publishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.SetPublished(ctx.Param("courseId"), req.Published)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 级联删除课程全部模块、课时、测验数据
// @Tags 课程
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Success 200 {object} util.Response "成功"
// @Security BearerAuth
// @Router /api/instructor/courses/{courseId} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.CourseService.Delete(ctx.Param("courseId")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMyCourses godoc
// @Summary 我的课程（讲师）
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Course} "成功"
// @Security BearerAuth
// @Router /api/instructor/courses [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListByInstructor(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Enroll godoc
// @Summary 选课
// @Tags 课程
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Success 201 {object} util.Response{data=model.Enrollment} "选课成功"
// @Failure 409 {object} util.Response "已选过该课程"
// @Security BearerAuth
// @Router /api/courses/{courseId}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, err := c.CourseService.Enroll(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		if errors.Is(err, util.ErrAlreadyEnrolled) {
			util.Error(ctx, 409, "已选过该课程")
		} else {
			util.HandleServiceError(ctx, err)
		}
		return
	}
	util.Created(ctx, enrollment)
}

// ListEnrollments godoc
// @Summary 我的选课
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Enrollment} "成功"
// @Security BearerAuth
// @Router /api/enrollments [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.CourseService.ListEnrollments(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}
