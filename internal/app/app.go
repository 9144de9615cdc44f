package app

import (
	"cemse_backend/internal/config"
	"cemse_backend/internal/controller"
	"cemse_backend/internal/middleware"
	"cemse_backend/internal/repository"
	"cemse_backend/internal/service"
	"cemse_backend/internal/validator"
	"cemse_backend/pkg/database"
	"cemse_backend/pkg/logger"
	"cemse_backend/pkg/monitoring"
	"cemse_backend/pkg/security"
	"cemse_backend/pkg/tracing"
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	course         *repository.CourseRepository
	quiz           *repository.QuizRepository
	attempt        *repository.QuizAttemptRepository
	enrollment     *repository.EnrollmentRepository
	lessonProgress *repository.LessonProgressRepository
	certificate    *repository.CertificateRepository
}

type services struct {
	storage     *service.StorageService
	quizAttempt *service.QuizAttemptService
	enrollment  *service.EnrollmentService
	certificate *service.CertificateService
	media       *service.MediaService
	report      *service.ReportService
	reconciler  *service.ProgressReconciler
}

type controllers struct {
	health      *controller.HealthController
	quizAttempt *controller.QuizAttemptController
	enrollment  *controller.EnrollmentController
	certificate *controller.CertificateController
	media       *controller.MediaController
	report      *controller.ReportController
}

// RegisterConfigCallback 配置热更新后依次回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 由配置监听器调用
func (a *App) ReloadConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		course:         repository.NewCourseRepository(db),
		quiz:           repository.NewQuizRepository(db),
		attempt:        repository.NewQuizAttemptRepository(db),
		enrollment:     repository.NewEnrollmentRepository(db),
		lessonProgress: repository.NewLessonProgressRepository(db),
		certificate:    repository.NewCertificateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.quizAttempt = service.NewQuizAttemptService(db, repos.quiz, repos.attempt, repos.enrollment)
	s.enrollment = service.NewEnrollmentService(db, repos.course, repos.enrollment, repos.lessonProgress)
	s.certificate = service.NewCertificateService(repos.enrollment, repos.certificate)
	s.media = service.NewMediaService(repos.course, repos.enrollment, s.storage, rdb, filepath.Join(os.TempDir(), "cemse-uploads"))
	s.report = service.NewReportService(s.quizAttempt, repos.attempt)
	s.reconciler = service.NewProgressReconciler(s.enrollment)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	v := validator.New()
	return &controllers{
		health:      controller.NewHealthController(db, a.Redis),
		quizAttempt: controller.NewQuizAttemptController(s.quizAttempt, v),
		enrollment:  controller.NewEnrollmentController(s.enrollment, s.certificate, v),
		certificate: controller.NewCertificateController(s.certificate),
		media:       controller.NewMediaController(s.media, v),
		report:      controller.NewReportController(s.report),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	if err := s.reconciler.Start(cfg.Progress.ReconcileCron); err != nil {
		logger.Log.Error("Failed to schedule progress reconciliation",
			zap.String("schedule", cfg.Progress.ReconcileCron),
			zap.Error(err),
		)
	}
}

// NewApp 初始化日志、数据库、Redis 并装配全部依赖；迁移模式下只建库不启动路由
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, cfg.ForceMigrate)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(app.services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("cemse-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})

	app.startBackgroundTasks(app.services, cfg)

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	a.services.reconciler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 释放 tracer、Redis 和数据库连接
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
