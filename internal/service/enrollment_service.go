package service

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/repository"
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"
	"cemse_backend/pkg/logger"
	"cemse_backend/pkg/monitoring"
	"cemse_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressSummary struct {
	Enrollment     *model.Enrollment
	LessonProgress []model.LessonProgress
}

type LessonProgressResult struct {
	LessonProgress *model.LessonProgress
	Enrollment     *model.Enrollment
	// JustCompleted 本次上报使选课记录进入 completed
	JustCompleted bool
}

type EnrollmentService struct {
	DB             *gorm.DB
	Courses        *repository.CourseRepository
	Enrollments    *repository.EnrollmentRepository
	LessonProgress *repository.LessonProgressRepository
	now            func() time.Time
}

func NewEnrollmentService(db *gorm.DB, courses *repository.CourseRepository, enrollments *repository.EnrollmentRepository, lessonProgress *repository.LessonProgressRepository) *EnrollmentService {
	return &EnrollmentService{
		DB:             db,
		Courses:        courses,
		Enrollments:    enrollments,
		LessonProgress: lessonProgress,
		now:            time.Now,
	}
}

func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	if _, err := s.Courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, fmt.Errorf("load course: %w", err)
	}

	if _, err := s.Enrollments.FindByStudentAndCourse(ctx, userID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}

	enrollment := &model.Enrollment{
		StudentID: userID,
		CourseID:  courseID,
		Status:    model.EnrollmentEnrolled,
	}
	if err := s.Enrollments.Create(ctx, enrollment); err != nil {
		// 并发报名时由唯一索引兜底
		if _, findErr := s.Enrollments.FindByStudentAndCourse(ctx, userID, courseID); findErr == nil {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	logger.Log.Info("Student enrolled", zap.Uint("student_id", userID), zap.Uint("course_id", courseID))
	return enrollment, nil
}

func (s *EnrollmentService) ListMine(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	return s.Enrollments.ListByStudent(ctx, userID)
}

// GetOwned 不存在返回 404，不属于调用者返回 403
func (s *EnrollmentService) GetOwned(ctx context.Context, userID, enrollmentID uint) (*model.Enrollment, error) {
	enrollment, err := s.Enrollments.FindByID(ctx, enrollmentID)
	return ownedEnrollment(enrollment, err, userID)
}

func (s *EnrollmentService) GetProgress(ctx context.Context, userID, enrollmentID uint) (*ProgressSummary, error) {
	enrollment, err := s.GetOwned(ctx, userID, enrollmentID)
	if err != nil {
		return nil, err
	}

	rows, err := s.LessonProgress.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("list lesson progress: %w", err)
	}
	return &ProgressSummary{Enrollment: enrollment, LessonProgress: rows}, nil
}

// UpdateLessonProgress 在一个事务内合并课时进度并重算选课进度
func (s *EnrollmentService) UpdateLessonProgress(ctx context.Context, userID, enrollmentID uint, req *validator.LessonProgressRequest) (*LessonProgressResult, error) {
	ctx, span := tracing.StartSpan(ctx, "EnrollmentService.UpdateLessonProgress")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("enrollment.id", int64(enrollmentID)),
		attribute.Int64("lesson.id", int64(req.LessonID)),
	)

	var result LessonProgressResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollments := s.Enrollments.WithTx(tx)
		courses := s.Courses.WithTx(tx)
		progressRepo := s.LessonProgress.WithTx(tx)

		locked, err := enrollments.FindByIDForUpdate(ctx, enrollmentID)
		enrollment, err := ownedEnrollment(locked, err, userID)
		if err != nil {
			return err
		}

		lesson, err := courses.FindLessonByID(ctx, req.LessonID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrLessonNotFound
			}
			return fmt.Errorf("load lesson: %w", err)
		}
		module, err := courses.FindModuleByID(ctx, lesson.ModuleID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load module: %w", err)
		}
		if err != nil || module.CourseID != enrollment.CourseID {
			return util.ErrLessonNotInCourse
		}

		now := s.now()
		row, err := progressRepo.Find(ctx, enrollmentID, lesson.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = &model.LessonProgress{EnrollmentID: enrollmentID, LessonID: lesson.ID}
		} else if err != nil {
			return fmt.Errorf("load lesson progress: %w", err)
		}

		MergeLessonProgress(row, req.IsCompleted, req.TimeSpent, req.VideoProgress, now)
		if err := progressRepo.Upsert(ctx, row); err != nil {
			return fmt.Errorf("upsert lesson progress: %w", err)
		}

		enrollment.CurrentModuleID = &module.ID
		enrollment.CurrentLessonID = &lesson.ID

		wasCompleted := enrollment.Status == model.EnrollmentCompleted
		if err := s.recalculate(ctx, tx, enrollment, now); err != nil {
			return err
		}

		result.LessonProgress = row
		result.Enrollment = enrollment
		result.JustCompleted = !wasCompleted && enrollment.Status == model.EnrollmentCompleted
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if result.JustCompleted {
		logger.Log.Info("Enrollment completed",
			zap.Uint("enrollment_id", enrollmentID),
			zap.Uint("student_id", userID),
			zap.Uint("course_id", result.Enrollment.CourseID),
		)
	}
	return &result, nil
}

// RecalculateProgress 从全部课时进度重新计算，不做归属校验，供对账任务和脚本调用
func (s *EnrollmentService) RecalculateProgress(ctx context.Context, enrollmentID uint) (*model.Enrollment, error) {
	var enrollment *model.Enrollment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := s.Enrollments.WithTx(tx).FindByIDForUpdate(ctx, enrollmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrEnrollmentNotFound
			}
			return fmt.Errorf("load enrollment: %w", err)
		}
		enrollment = e
		return s.recalculate(ctx, tx, e, s.now())
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// recalculate 调用方需已在事务中锁定 enrollment
func (s *EnrollmentService) recalculate(ctx context.Context, tx *gorm.DB, enrollment *model.Enrollment, now time.Time) error {
	lessons, err := s.Courses.WithTx(tx).FindLessonsByCourse(ctx, enrollment.CourseID)
	if err != nil {
		return fmt.Errorf("load course lessons: %w", err)
	}
	rows, err := s.LessonProgress.WithTx(tx).ListByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return fmt.Errorf("list lesson progress: %w", err)
	}

	ApplyProgress(enrollment, CalculateProgress(lessons, rows), now)

	timeSpent := 0
	for _, row := range rows {
		timeSpent += row.TimeSpent
	}
	enrollment.TimeSpent = timeSpent

	if err := s.Enrollments.WithTx(tx).Save(ctx, enrollment); err != nil {
		return fmt.Errorf("save enrollment: %w", err)
	}
	monitoring.ProgressRecomputations.WithLabelValues(string(enrollment.Status)).Inc()
	return nil
}

func ownedEnrollment(enrollment *model.Enrollment, err error, userID uint) (*model.Enrollment, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	if enrollment.StudentID != userID {
		return nil, util.ErrPermissionDenied
	}
	return enrollment, nil
}
