package service

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/repository"
	"cemse_backend/internal/testutil"
	"testing"

	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	courses     *repository.CourseRepository
	quizzes     *repository.QuizRepository
	attempts    *repository.QuizAttemptRepository
	enrollments *repository.EnrollmentRepository
	progress    *repository.LessonProgressRepository
	certs       *repository.CertificateRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &testEnv{
		db:          db,
		courses:     repository.NewCourseRepository(db),
		quizzes:     repository.NewQuizRepository(db),
		attempts:    repository.NewQuizAttemptRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		progress:    repository.NewLessonProgressRepository(db),
		certs:       repository.NewCertificateRepository(db),
	}
}

func (e *testEnv) quizService() *QuizAttemptService {
	return NewQuizAttemptService(e.db, e.quizzes, e.attempts, e.enrollments)
}

func (e *testEnv) enrollmentService() *EnrollmentService {
	return NewEnrollmentService(e.db, e.courses, e.enrollments, e.progress)
}

func newQuestion(qt model.QuestionType, correct string, points int) model.Question {
	return model.Question{Type: qt, Prompt: "?", CorrectAnswer: correct, Points: points, Explanation: "see lesson"}
}
