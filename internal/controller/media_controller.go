package controller

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// MediaController 课程素材上传
type MediaController struct {
	StorageService *service.StorageService
}

func NewMediaController(storageService *service.StorageService) *MediaController {
	return &MediaController{StorageService: storageService}
}

var allowedVideoExt = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".mkv":  true,
}

// UploadLessonVideo godoc
// @Summary 上传课时视频
// @Description 上传后自动探测视频时长并写回课时
// @Tags 素材
// @Accept  multipart/form-data
// @Produce  json
// @Param   lessonId path string true "课时 ID"
// @Param   file formData file true "视频文件"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Security BearerAuth
// @Router /api/instructor/lessons/{lessonId}/video [post]
func (c *MediaController) UploadLessonVideo(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedVideoExt[ext] {
		util.BadRequest(ctx, "unsupported video format: "+ext)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	lesson, err := c.StorageService.UploadLessonVideo(ctx.Request.Context(), ctx.Param("lessonId"), file, fileHeader.Size, ext)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// UploadThumbnail godoc
// @Summary 上传课程封面
// @Tags 素材
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object} "返回可访问地址"
// @Security BearerAuth
// @Router /api/instructor/uploads/thumbnail [post]
func (c *MediaController) UploadThumbnail(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "image file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		util.BadRequest(ctx, "unsupported image format: "+ext)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := "thumbnails/" + model.GenerateUUID() + ext
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
