package controller

import (
	"cemse_backend/internal/service"
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"
	"net/http"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	Service      *service.EnrollmentService
	Certificates *service.CertificateService
	Validator    *validator.Validator
}

func NewEnrollmentController(svc *service.EnrollmentService, certificates *service.CertificateService, v *validator.Validator) *EnrollmentController {
	return &EnrollmentController{Service: svc, Certificates: certificates, Validator: v}
}

// @Summary 选课
// @Tags 选课
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body validator.EnrollRequest true "课程"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	var req validator.EnrollRequest
	if !bindJSON(ctx, c.Validator, &req) {
		return
	}

	enrollment, err := c.Service.Enroll(ctx.Request.Context(), user.UserID, req.CourseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, enrollment)
}

// @Summary 我的选课
// @Tags 选课
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	enrollments, err := c.Service.ListMine(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}

// @Summary 学习进度
// @Description 返回选课摘要和全部课时进度
// @Tags 选课
// @Produce json
// @Security BearerAuth
// @Param id path int true "选课ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{id}/progress [get]
func (c *EnrollmentController) GetProgress(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.Service.GetProgress(ctx.Request.Context(), user.UserID, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"enrollment":     summary.Enrollment,
		"lessonProgress": summary.LessonProgress,
	})
}

// @Summary 更新课时进度
// @Description 写入课时进度并重新计算课程进度
// @Tags 选课
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "选课ID"
// @Param body body validator.LessonProgressRequest true "课时进度"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{id}/progress [post]
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req validator.LessonProgressRequest
	if !bindJSON(ctx, c.Validator, &req) {
		return
	}

	result, err := c.Service.UpdateLessonProgress(ctx.Request.Context(), user.UserID, id, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	message := "Progress updated"
	if result.JustCompleted {
		message = "Course completed"
	}
	util.Success(ctx, gin.H{
		"lessonProgress":  result.LessonProgress,
		"overallProgress": result.Enrollment.Progress,
		"status":          result.Enrollment.Status,
		"message":         message,
	})
}

// @Summary 领取结业证书
// @Description 课程完成后颁发证书，已颁发时直接返回
// @Tags 选课
// @Produce json
// @Security BearerAuth
// @Param id path int true "选课ID"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Success 201 {object} util.Response{data=model.Certificate}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/enrollments/{id}/certificate [post]
func (c *EnrollmentController) IssueCertificate(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	cert, created, err := c.Certificates.Issue(ctx.Request.Context(), user.UserID, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if created {
		util.Created(ctx, cert)
		return
	}
	util.Success(ctx, cert)
}

type CertificateController struct {
	Service *service.CertificateService
}

func NewCertificateController(svc *service.CertificateService) *CertificateController {
	return &CertificateController{Service: svc}
}

// @Summary 验证证书
// @Tags 证书
// @Produce json
// @Param number path string true "证书编号"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/certificates/{number} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	number := ctx.Param("number")
	if number == "" {
		util.BadRequest(ctx, "Invalid certificate number")
		return
	}

	cert, err := c.Service.Verify(ctx.Request.Context(), number)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, util.Response{Code: http.StatusOK, Message: "valid", Data: cert})
}
