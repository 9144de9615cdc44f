// Package testutil 提供基于内存 SQLite 的测试数据库和课程/测验夹具
package testutil

import (
	"cemse_backend/internal/model"
	"cemse_backend/pkg/database"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB 每个测试独立的内存库，已完成迁移
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=0", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// CourseLayout 描述一门课程：每个元素是一个模块，值为各课时是否必修
type CourseLayout [][]bool

// SeedCourse 按 CourseLayout 建课程树，返回课程与按顺序展开的课时
func SeedCourse(t testing.TB, db *gorm.DB, layout CourseLayout) (*model.Course, []model.Lesson) {
	t.Helper()

	course := &model.Course{Title: "Course"}
	mustCreate(t, db, course)

	var lessons []model.Lesson
	for mi, required := range layout {
		module := &model.Module{CourseID: course.ID, Title: fmt.Sprintf("Module %d", mi+1), OrderIndex: mi}
		mustCreate(t, db, module)
		for li, req := range required {
			lesson := model.Lesson{ModuleID: module.ID, Title: fmt.Sprintf("Lesson %d.%d", mi+1, li+1), OrderIndex: li, IsRequired: req}
			mustCreate(t, db, &lesson)
			lessons = append(lessons, lesson)
		}
	}
	return course, lessons
}

// SeedQuiz 每个问题按给定题型/正确答案/分值建立
func SeedQuiz(t testing.TB, db *gorm.DB, passingScore int, showAnswers bool, questions ...model.Question) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{Title: "Quiz", PassingScore: passingScore, ShowCorrectAnswers: showAnswers}
	mustCreate(t, db, quiz)
	for i := range questions {
		questions[i].QuizID = quiz.ID
		if questions[i].OrderIndex == 0 {
			questions[i].OrderIndex = i
		}
		mustCreate(t, db, &questions[i])
	}
	quiz.Questions = questions
	return quiz
}

func SeedEnrollment(t testing.TB, db *gorm.DB, studentID, courseID uint) *model.Enrollment {
	t.Helper()

	enrollment := &model.Enrollment{StudentID: studentID, CourseID: courseID, Status: model.EnrollmentEnrolled}
	mustCreate(t, db, enrollment)
	return enrollment
}

func mustCreate(t testing.TB, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}
