package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ReviewController 课程评价：提交、查看、管理员审核
type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// ListReviews godoc
// @Summary 课程评价汇总
// @Description 均分、总数、星级分布和已过审的评价列表
// @Tags 评价
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Success 200 {object} util.Response{data=service.ReviewSummary} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{courseId}/reviews [get]
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	summary, err := c.ReviewService.GetCourseReviews(ctx.Param("courseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// SubmitReview godoc
// @Summary 提交课程评价
// @Description 一人一课一条，重复提交覆盖原评价；只有选了课的学员能评
// @Tags 评价
// @Accept  json
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Param   body body service.ReviewInput true "评分和评语"
// @Success 200 {object} util.Response{data=model.Review} "成功"
// @Failure 404 {object} util.Response "未选课或课程不存在"
// @Security BearerAuth
// @Router /api/courses/{courseId}/review [put]
func (c *ReviewController) SubmitReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ReviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.ReviewService.Submit(claims.UserID, ctx.Param("courseId"), input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

// GetMyReview godoc
// @Summary 我的课程评价
// @Tags 评价
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Success 200 {object} util.Response{data=model.Review} "成功"
// @Failure 404 {object} util.Response "还没评价过"
// @Security BearerAuth
// @Router /api/courses/{courseId}/review [get]
func (c *ReviewController) GetMyReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	review, err := c.ReviewService.GetMyReview(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, review)
}

type moderateReviewRequest struct {
	Moderated *bool `json:"moderated" binding:"required"`
}

// ModerateReview godoc
// @Summary 审核课程评价
// @Description 下架的评价不再出现在课程页
// @Tags 管理
// @Accept  json
// @Produce  json
// @Param   id path string true "评价 ID"
// @Param   body body moderateReviewRequest true "审核状态"
// @Success 200 {object} util.Response{data=model.Review} "成功"
// @Failure 404 {object} util.Response "评价不存在"
// @Security BearerAuth
// @Router /api/admin/reviews/{id}/moderated [put]
func (c *ReviewController) ModerateReview(ctx *gin.Context) {
	var req moderateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.ReviewService.Moderate(ctx.Param("id"), *req.Moderated)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, review)
}
