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
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptDetail 作答记录连同所属测验，展示层据 ShowCorrectAnswers 决定是否返回答案
type AttemptDetail struct {
	Attempt *model.QuizAttempt
	Quiz    *model.Quiz
	Result  *ScoreResult
}

type QuizAttemptService struct {
	DB          *gorm.DB
	Quizzes     *repository.QuizRepository
	Attempts    *repository.QuizAttemptRepository
	Enrollments *repository.EnrollmentRepository
	now         func() time.Time
}

func NewQuizAttemptService(db *gorm.DB, quizzes *repository.QuizRepository, attempts *repository.QuizAttemptRepository, enrollments *repository.EnrollmentRepository) *QuizAttemptService {
	return &QuizAttemptService{
		DB:          db,
		Quizzes:     quizzes,
		Attempts:    attempts,
		Enrollments: enrollments,
		now:         time.Now,
	}
}

func (s *QuizAttemptService) GetQuiz(ctx context.Context, quizID uint) (*model.Quiz, error) {
	quiz, err := s.Quizzes.FindWithQuestions(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, fmt.Errorf("load quiz %d: %w", quizID, err)
	}
	return quiz, nil
}

// Start 创建一条未完成的作答记录
func (s *QuizAttemptService) Start(ctx context.Context, userID uint, req *validator.StartAttemptRequest) (*model.QuizAttempt, error) {
	quiz, err := s.GetQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEnrollment(ctx, userID, quiz, req.EnrollmentID); err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:       quiz.ID,
		StudentID:    userID,
		EnrollmentID: req.EnrollmentID,
		StartedAt:    s.now(),
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}
	return attempt, nil
}

// Complete 评分并在同一事务中写入作答记录和全部答案。
// 带 attemptId 时完成已开始的作答，否则新建一条。
func (s *QuizAttemptService) Complete(ctx context.Context, userID uint, req *validator.CompleteAttemptRequest) (*AttemptDetail, error) {
	ctx, span := tracing.StartSpan(ctx, "QuizAttemptService.Complete")
	defer span.End()
	span.SetAttributes(attribute.Int64("quiz.id", int64(req.QuizID)))

	quiz, err := s.GetQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEnrollment(ctx, userID, quiz, req.EnrollmentID); err != nil {
		return nil, err
	}

	result := ScoreQuiz(quiz, req.Answers)
	now := s.now()

	var attempt *model.QuizAttempt
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempts := s.Attempts.WithTx(tx)

		if req.AttemptID != nil {
			existing, err := s.loadOpenAttempt(ctx, attempts, userID, quiz.ID, *req.AttemptID)
			if err != nil {
				return err
			}
			attempt = existing
			if req.EnrollmentID != nil {
				attempt.EnrollmentID = req.EnrollmentID
			}
		} else {
			attempt = &model.QuizAttempt{
				QuizID:       quiz.ID,
				StudentID:    userID,
				EnrollmentID: req.EnrollmentID,
				StartedAt:    now,
			}
		}

		attempt.CompletedAt = &now
		attempt.Score = result.EarnedPoints
		attempt.Passed = result.Passed
		attempt.TimeSpent = result.TimeSpent

		if req.AttemptID != nil {
			ok, err := attempts.Finalize(ctx, attempt)
			if err != nil {
				return fmt.Errorf("finalize attempt: %w", err)
			}
			if !ok {
				return util.ErrAttemptAlreadyCompleted
			}
		} else if err := attempts.Create(ctx, attempt); err != nil {
			return fmt.Errorf("create attempt: %w", err)
		}

		answers := make([]model.QuizAnswer, 0, len(result.Answers))
		for _, a := range result.Answers {
			answers = append(answers, model.QuizAnswer{
				AttemptID:  attempt.ID,
				QuestionID: a.QuestionID,
				Answer:     a.Answer,
				IsCorrect:  a.IsCorrect,
				TimeSpent:  a.TimeSpent,
				OrderIndex: a.OrderIndex,
			})
		}
		if err := attempts.CreateAnswers(ctx, answers); err != nil {
			return fmt.Errorf("create answers: %w", err)
		}
		attempt.Answers = answers
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	monitoring.QuizAttemptsScored.WithLabelValues(strconv.FormatBool(result.Passed)).Inc()
	logger.Log.Info("Quiz attempt scored",
		zap.String("attempt_id", attempt.ID),
		zap.Uint("quiz_id", quiz.ID),
		zap.Uint("student_id", userID),
		zap.Int("score", result.EarnedPoints),
		zap.Int("total_points", result.TotalPoints),
		zap.Bool("passed", result.Passed),
	)

	return &AttemptDetail{Attempt: attempt, Quiz: quiz, Result: &result}, nil
}

// GetAttempt 只有作答者本人可以查看
func (s *QuizAttemptService) GetAttempt(ctx context.Context, userID uint, attemptID string) (*AttemptDetail, error) {
	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	if attempt.StudentID != userID {
		return nil, util.ErrPermissionDenied
	}

	quiz, err := s.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	return &AttemptDetail{Attempt: attempt, Quiz: quiz}, nil
}

func (s *QuizAttemptService) loadOpenAttempt(ctx context.Context, attempts *repository.QuizAttemptRepository, userID, quizID uint, attemptID string) (*model.QuizAttempt, error) {
	attempt, err := attempts.FindByIDForUpdate(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	if attempt.StudentID != userID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.QuizID != quizID {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.IsCompleted() {
		return nil, util.ErrAttemptAlreadyCompleted
	}
	return attempt, nil
}

// checkEnrollment 可选的选课记录必须属于调用者，且与测验所属课程一致
func (s *QuizAttemptService) checkEnrollment(ctx context.Context, userID uint, quiz *model.Quiz, enrollmentID *uint) error {
	if enrollmentID == nil {
		return nil
	}
	enrollment, err := s.Enrollments.FindByID(ctx, *enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEnrollmentNotFound
		}
		return fmt.Errorf("load enrollment: %w", err)
	}
	if enrollment.StudentID != userID {
		return util.ErrPermissionDenied
	}
	if quiz.CourseID != nil && *quiz.CourseID != enrollment.CourseID {
		return util.ErrQuizNotInCourse
	}
	return nil
}
