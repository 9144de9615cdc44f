package controller

import (
	"cemse_backend/internal/service"
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	Service   *service.MediaService
	Validator *validator.Validator
}

func NewMediaController(svc *service.MediaService, v *validator.Validator) *MediaController {
	return &MediaController{Service: svc, Validator: v}
}

// @Summary 获取课时视频播放地址
// @Description 学员需已选该课程，返回限时签名地址
// @Tags 课时视频
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response{data=service.VideoURL}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/video [get]
func (c *MediaController) GetVideoURL(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	url, err := c.Service.GetLessonVideoURL(ctx.Request.Context(), user, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, url)
}

// @Summary 上传课时视频
// @Tags 课时视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Param file formData file true "视频文件"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Router /api/instructor/lessons/{id}/video [post]
func (c *MediaController) UploadVideo(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	lesson, err := c.Service.UploadLessonVideo(ctx.Request.Context(), id, file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, lesson)
}

// @Summary 分片上传课时视频
// @Description 分片编号从 0 开始，最后一个分片到达后自动合并
// @Tags 课时视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Param file formData file true "分片数据"
// @Param identifier formData string true "上传标识"
// @Param filename formData string true "原始文件名"
// @Param chunkNumber formData int true "分片编号"
// @Param totalChunks formData int true "分片总数"
// @Success 200 {object} util.Response
// @Router /api/instructor/lessons/{id}/video/chunk [post]
func (c *MediaController) UploadVideoChunk(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req validator.ChunkUploadRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, "Invalid form: "+err.Error())
		return
	}
	if err := c.Validator.Struct(&req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	progress, lesson, err := c.Service.UploadLessonVideoChunk(ctx.Request.Context(), id, &req, file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"progress":  progress,
		"completed": lesson != nil,
		"lesson":    lesson,
	})
}

// @Summary 查询分片上传进度
// @Tags 课时视频
// @Produce json
// @Security BearerAuth
// @Param uploadId path string true "上传标识"
// @Success 200 {object} util.Response{data=model.UploadProgress}
// @Failure 404 {object} util.Response
// @Router /api/instructor/uploads/{uploadId} [get]
func (c *MediaController) GetUploadProgress(ctx *gin.Context) {
	progress, err := c.Service.GetUploadProgress(ctx.Request.Context(), ctx.Param("uploadId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
