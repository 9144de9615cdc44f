package app

import (
	"cemse_backend/docs"
	"cemse_backend/internal/config"
	"cemse_backend/internal/middleware"
	"cemse_backend/internal/model"
	"cemse_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// 学员接口
		a.registerLearnerRoutes(authGroup, c)

		// 教师/管理员接口
		a.registerInstructorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/certificates/:number", c.certificate.Verify)
	}
}

func (a *App) registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/quizzes/:id", c.quizAttempt.GetQuiz)

	attempts := group.Group("/quiz-attempts")
	{
		attempts.POST("", c.quizAttempt.StartAttempt)
		attempts.POST("/complete", c.quizAttempt.CompleteAttempt)
		attempts.GET("/:id", c.quizAttempt.GetAttempt)
	}

	enrollments := group.Group("/enrollments")
	{
		enrollments.POST("", c.enrollment.Enroll)
		enrollments.GET("", c.enrollment.ListMine)
		enrollments.GET("/:id/progress", c.enrollment.GetProgress)
		enrollments.POST("/:id/progress", c.enrollment.UpdateProgress)
		enrollments.POST("/:id/certificate", c.enrollment.IssueCertificate)
	}

	group.GET("/lessons/:id/video", c.media.GetVideoURL)
}

func (a *App) registerInstructorRoutes(group *gin.RouterGroup, c *controllers) {
	instructor := group.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/lessons/:id/video", c.media.UploadVideo)
		instructor.POST("/lessons/:id/video/chunk", c.media.UploadVideoChunk)
		instructor.GET("/uploads/:uploadId", c.media.GetUploadProgress)
		instructor.GET("/quizzes/:id/attempts/export", c.report.ExportQuizAttempts)
	}
}
