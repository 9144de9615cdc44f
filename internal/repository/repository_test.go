package repository

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/testutil"
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestFindLessonsByCourseOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	course, seeded := testutil.SeedCourse(t, db, testutil.CourseLayout{{true, false}, {true}})

	// 倒序插入的模块应排在前面
	first := &model.Module{CourseID: course.ID, Title: "Intro", OrderIndex: -1}
	db.Create(first)
	intro := &model.Lesson{ModuleID: first.ID, Title: "Welcome", IsRequired: true}
	db.Create(intro)

	// 其他课程的课时不应出现
	testutil.SeedCourse(t, db, testutil.CourseLayout{{true}})

	repo := NewCourseRepository(db)
	lessons, err := repo.FindLessonsByCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("FindLessonsByCourse: %v", err)
	}

	want := []uint{intro.ID, seeded[0].ID, seeded[1].ID, seeded[2].ID}
	if len(lessons) != len(want) {
		t.Fatalf("got %d lessons, want %d", len(lessons), len(want))
	}
	for i, id := range want {
		if lessons[i].ID != id {
			t.Errorf("lessons[%d] = %d, want %d", i, lessons[i].ID, id)
		}
	}

	db.Delete(first)
	lessons, _ = repo.FindLessonsByCourse(ctx, course.ID)
	if len(lessons) != 3 {
		t.Errorf("soft-deleted module still contributes lessons: %d", len(lessons))
	}
}

func TestLessonProgressUpsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewLessonProgressRepository(db)

	row := &model.LessonProgress{EnrollmentID: 1, LessonID: 2, TimeSpent: 30}
	if err := repo.Upsert(ctx, row); err != nil {
		t.Fatalf("insert: %v", err)
	}

	firstUpdate := row.UpdatedAt
	time.Sleep(20 * time.Millisecond)

	now := time.Now()
	row.IsCompleted = true
	row.CompletedAt = &now
	row.TimeSpent = 90
	if err := repo.Upsert(ctx, row); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows, err := repo.ListByEnrollment(ctx, 1)
	if err != nil {
		t.Fatalf("ListByEnrollment: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rows[0].IsCompleted || rows[0].TimeSpent != 90 || rows[0].CompletedAt == nil {
		t.Errorf("unexpected row %+v", rows[0])
	}
	if !rows[0].UpdatedAt.After(firstUpdate) {
		t.Errorf("updated_at not refreshed: %v -> %v", firstUpdate, rows[0].UpdatedAt)
	}

	if _, err := repo.Find(ctx, 1, 3); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestQuizAttemptFinalizeOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewQuizAttemptRepository(db)

	attempt := &model.QuizAttempt{QuizID: 1, StudentID: 1, StartedAt: time.Now()}
	if err := repo.Create(ctx, attempt); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if attempt.ID == "" {
		t.Fatal("uuid not assigned")
	}

	now := time.Now()
	attempt.CompletedAt = &now
	attempt.Score = 5
	ok, err := repo.Finalize(ctx, attempt)
	if err != nil || !ok {
		t.Fatalf("first finalize: ok=%v err=%v", ok, err)
	}

	ok, err = repo.Finalize(ctx, attempt)
	if err != nil || ok {
		t.Fatalf("second finalize should not update: ok=%v err=%v", ok, err)
	}

	answers := []model.QuizAnswer{
		{AttemptID: attempt.ID, QuestionID: 2, OrderIndex: 1},
		{AttemptID: attempt.ID, QuestionID: 1, OrderIndex: 0},
	}
	if err := repo.CreateAnswers(ctx, answers); err != nil {
		t.Fatalf("CreateAnswers: %v", err)
	}

	loaded, err := repo.FindByID(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(loaded.Answers) != 2 || loaded.Answers[0].QuestionID != 1 {
		t.Errorf("answers not ordered: %+v", loaded.Answers)
	}

	completed, _ := repo.ListCompletedByQuiz(ctx, 1)
	if len(completed) != 1 {
		t.Errorf("ListCompletedByQuiz = %d, want 1", len(completed))
	}
}

func TestEnrollmentUniqueAndIncomplete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewEnrollmentRepository(db)

	a := &model.Enrollment{StudentID: 1, CourseID: 1, Status: model.EnrollmentEnrolled}
	b := &model.Enrollment{StudentID: 1, CourseID: 2, Status: model.EnrollmentCompleted}
	c := &model.Enrollment{StudentID: 2, CourseID: 1, Status: model.EnrollmentInProgress}
	for _, e := range []*model.Enrollment{a, b, c} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := repo.Create(ctx, &model.Enrollment{StudentID: 1, CourseID: 1, Status: model.EnrollmentEnrolled}); err == nil {
		t.Error("duplicate enrollment accepted")
	}

	ids, err := repo.ListIncompleteIDs(ctx, 0, 10)
	if err != nil {
		t.Fatalf("ListIncompleteIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != a.ID || ids[1] != c.ID {
		t.Errorf("ids = %v", ids)
	}

	ids, _ = repo.ListIncompleteIDs(ctx, a.ID, 10)
	if len(ids) != 1 || ids[0] != c.ID {
		t.Errorf("paged ids = %v", ids)
	}

	found, err := repo.FindByStudentAndCourse(ctx, 2, 1)
	if err != nil || found.ID != c.ID {
		t.Errorf("FindByStudentAndCourse = %+v, %v", found, err)
	}
}

func TestCertificateLookup(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewCertificateRepository(db)

	cert := &model.Certificate{EnrollmentID: 3, StudentID: 1, CourseID: 1, CertificateNumber: "CEMSE-20260101-ABCDEF12", IssuedAt: time.Now()}
	if err := repo.Create(ctx, cert); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byNumber, err := repo.FindByNumber(ctx, cert.CertificateNumber)
	if err != nil || byNumber.ID != cert.ID {
		t.Errorf("FindByNumber = %+v, %v", byNumber, err)
	}
	if _, err := repo.FindByEnrollment(ctx, 4); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	dup := &model.Certificate{EnrollmentID: 3, StudentID: 1, CourseID: 1, CertificateNumber: "CEMSE-20260101-00000000", IssuedAt: time.Now()}
	if err := repo.Create(ctx, dup); err == nil {
		t.Error("second certificate for the same enrollment accepted")
	}
}
