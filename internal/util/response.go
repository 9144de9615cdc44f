package util

import (
	"cemse_backend/internal/validator"
	"cemse_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Error:   message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// ValidationFailed 400 并附带字段级错误
func ValidationFailed(c *gin.Context, errs validator.ValidationErrors) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: errs.Error(),
		Error:   errs.Error(),
		Details: errs,
	})
}

// InternalServerError 生产环境只返回通用信息，其余模式附带 details
func InternalServerError(c *gin.Context, err error) {
	resp := Response{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
		Error:   "Internal server error",
	}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	InternalServerError(c, err)
}

// HandleError 将服务层错误映射为 HTTP 状态码
func HandleError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		ValidationFailed(c, verrs)
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(c)
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrQuizNotFound),
		errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrLessonNotFound),
		errors.Is(err, ErrEnrollmentNotFound),
		errors.Is(err, ErrAttemptNotFound),
		errors.Is(err, ErrCertificateNotFound),
		errors.Is(err, ErrUploadProgressNotFound),
		errors.Is(err, ErrVideoNotAvailable):
		NotFound(c, rootMessage(err))
	case errors.Is(err, ErrAttemptAlreadyCompleted),
		errors.Is(err, ErrAlreadyEnrolled):
		Conflict(c, rootMessage(err))
	case errors.Is(err, ErrEnrollmentNotCompleted),
		errors.Is(err, ErrLessonNotInCourse),
		errors.Is(err, ErrQuizNotInCourse),
		errors.Is(err, ErrInvalidVideoExt),
		errors.Is(err, ErrInvalidChunk),
		errors.Is(err, ErrInvalidFileContent):
		BadRequest(c, rootMessage(err))
	default:
		LogInternalError(c, err)
	}
}

// rootMessage 去掉包装前缀，只暴露哨兵错误本身的文本
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
