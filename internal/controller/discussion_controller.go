package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DiscussionController 课程讨论区：发帖、回帖、删帖
type DiscussionController struct {
	DiscussionService *service.DiscussionService
}

func NewDiscussionController(discussionService *service.DiscussionService) *DiscussionController {
	return &DiscussionController{DiscussionService: discussionService}
}

type postDiscussionRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type replyRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListDiscussions godoc
// @Summary 课程讨论列表
// @Description 主题帖按发帖时间倒序，每帖带时间正序的回帖
// @Tags 讨论
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Success 200 {object} util.Response{data=[]service.DiscussionThread} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Security BearerAuth
// @Router /api/courses/{courseId}/discussions [get]
func (c *DiscussionController) ListDiscussions(ctx *gin.Context) {
	threads, err := c.DiscussionService.ListByCourse(ctx.Param("courseId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, threads)
}

// PostDiscussion godoc
// @Summary 发主题帖
// @Tags 讨论
// @Accept  json
// @Produce  json
// @Param   courseId path string true "课程 ID"
// @Param   body body postDiscussionRequest true "帖子内容"
// @Success 201 {object} util.Response{data=model.Discussion} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Security BearerAuth
// @Router /api/courses/{courseId}/discussions [post]
func (c *DiscussionController) PostDiscussion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req postDiscussionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	discussion, err := c.DiscussionService.Post(claims.UserID, ctx.Param("courseId"), req.Title, req.Content)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, discussion)
}

// ReplyDiscussion godoc
// @Summary 回帖
// @Description 只支持一层回帖，回帖不能再被回复
// @Tags 讨论
// @Accept  json
// @Produce  json
// @Param   discussionId path string true "主题帖 ID"
// @Param   body body replyRequest true "回帖内容"
// @Success 201 {object} util.Response{data=model.Discussion} "成功"
// @Failure 404 {object} util.Response "主题帖不存在"
// @Security BearerAuth
// @Router /api/discussions/{discussionId}/replies [post]
func (c *DiscussionController) ReplyDiscussion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req replyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.DiscussionService.Reply(claims.UserID, ctx.Param("discussionId"), req.Content)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, reply)
}

// DeleteDiscussion godoc
// @Summary 删帖
// @Description 作者本人或管理员可删，删主题帖连同回帖一起删
// @Tags 讨论
// @Produce  json
// @Param   discussionId path string true "帖子 ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权删除"
// @Failure 404 {object} util.Response "帖子不存在"
// @Security BearerAuth
// @Router /api/discussions/{discussionId} [delete]
func (c *DiscussionController) DeleteDiscussion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	isAdmin := claims.Role == model.Admin
	if err := c.DiscussionService.Delete(claims.UserID, isAdmin, ctx.Param("discussionId")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
