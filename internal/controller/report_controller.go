package controller

import (
	"cemse_backend/internal/service"
	"cemse_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *service.ReportService
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Service: svc}
}

// @Summary 导出测验作答记录
// @Tags 报表
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {file} file
// @Failure 404 {object} util.Response
// @Router /api/instructor/quizzes/{id}/attempts/export [get]
func (c *ReportController) ExportQuizAttempts(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	data, filename, err := c.Service.ExportQuizAttempts(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, util.MimeXLSX, data)
}
