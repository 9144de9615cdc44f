package service

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/testutil"
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"
	"context"
	"errors"
	"testing"
	"time"
)

func TestLessonProgressDrivesEnrollmentStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.enrollmentService()

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	course, lessons := testutil.SeedCourse(t, env.db, testutil.CourseLayout{{true, true}, {true, true}})
	enrollment := testutil.SeedEnrollment(t, env.db, 10, course.ID)

	var result *LessonProgressResult
	for i, lesson := range lessons[:3] {
		var err error
		result, err = svc.UpdateLessonProgress(ctx, 10, enrollment.ID, &validator.LessonProgressRequest{LessonID: lesson.ID, IsCompleted: true, TimeSpent: 60})
		if err != nil {
			t.Fatalf("lesson %d: %v", i, err)
		}
	}
	if result.Enrollment.Progress != 75 || result.Enrollment.Status != model.EnrollmentInProgress {
		t.Fatalf("after 3/4: %+v", result.Enrollment)
	}
	if result.Enrollment.TimeSpent != 180 {
		t.Errorf("timeSpent = %d, want 180", result.Enrollment.TimeSpent)
	}
	if *result.Enrollment.CurrentLessonID != lessons[2].ID {
		t.Errorf("current lesson = %d, want %d", *result.Enrollment.CurrentLessonID, lessons[2].ID)
	}

	completedAt := clock.Add(time.Hour)
	clock = completedAt
	result, err := svc.UpdateLessonProgress(ctx, 10, enrollment.ID, &validator.LessonProgressRequest{LessonID: lessons[3].ID, IsCompleted: true})
	if err != nil {
		t.Fatalf("last lesson: %v", err)
	}
	if result.Enrollment.Progress != 100 || result.Enrollment.Status != model.EnrollmentCompleted || !result.JustCompleted {
		t.Fatalf("after 4/4: %+v", result.Enrollment)
	}

	clock = clock.Add(time.Hour)
	again, err := svc.RecalculateProgress(ctx, enrollment.ID)
	if err != nil {
		t.Fatalf("RecalculateProgress: %v", err)
	}
	if again.Progress != 100 || !again.CompletedAt.Equal(completedAt) {
		t.Errorf("completedAt restamped: %v, want %v", again.CompletedAt, completedAt)
	}
}

func TestLessonProgressNeverUncompletes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.enrollmentService()
	course, lessons := testutil.SeedCourse(t, env.db, testutil.CourseLayout{{true, true}})
	enrollment := testutil.SeedEnrollment(t, env.db, 1, course.ID)
	half := 0.5

	if _, err := svc.UpdateLessonProgress(ctx, 1, enrollment.ID, &validator.LessonProgressRequest{LessonID: lessons[0].ID, IsCompleted: true, TimeSpent: 100, VideoProgress: &half}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	result, err := svc.UpdateLessonProgress(ctx, 1, enrollment.ID, &validator.LessonProgressRequest{LessonID: lessons[0].ID, IsCompleted: false, TimeSpent: 10})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	lp := result.LessonProgress
	if !lp.IsCompleted || lp.TimeSpent != 100 || lp.VideoProgress != 0.5 {
		t.Errorf("lesson progress regressed: %+v", lp)
	}
	if result.Enrollment.Progress != 50 {
		t.Errorf("progress = %d, want 50", result.Enrollment.Progress)
	}

	summary, err := svc.GetProgress(ctx, 1, enrollment.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if len(summary.LessonProgress) != 1 || summary.Enrollment.Progress != 50 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestUpdateLessonProgressErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.enrollmentService()
	course, lessons := testutil.SeedCourse(t, env.db, testutil.CourseLayout{{true}})
	_, foreign := testutil.SeedCourse(t, env.db, testutil.CourseLayout{{true}})
	enrollment := testutil.SeedEnrollment(t, env.db, 1, course.ID)

	tests := []struct {
		name         string
		userID       uint
		enrollmentID uint
		lessonID     uint
		want         error
	}{
		{"enrollment not found", 1, 999, lessons[0].ID, util.ErrEnrollmentNotFound},
		{"not the owner", 2, enrollment.ID, lessons[0].ID, util.ErrPermissionDenied},
		{"lesson not found", 1, enrollment.ID, 999, util.ErrLessonNotFound},
		{"lesson of another course", 1, enrollment.ID, foreign[0].ID, util.ErrLessonNotInCourse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateLessonProgress(ctx, tt.userID, tt.enrollmentID, &validator.LessonProgressRequest{LessonID: tt.lessonID, IsCompleted: true})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	var rows int64
	env.db.Model(&model.LessonProgress{}).Count(&rows)
	if rows != 0 {
		t.Errorf("failed updates wrote %d lesson progress rows", rows)
	}

	if _, err := svc.GetProgress(ctx, 2, enrollment.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("GetProgress other student: %v", err)
	}
}

func TestRecalculateProgressEdgeCases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.enrollmentService()

	empty, _ := testutil.SeedCourse(t, env.db, testutil.CourseLayout{})
	enrollment := testutil.SeedEnrollment(t, env.db, 1, empty.ID)

	for i := 0; i < 2; i++ {
		got, err := svc.RecalculateProgress(ctx, enrollment.ID)
		if err != nil {
			t.Fatalf("RecalculateProgress: %v", err)
		}
		if got.Progress != 0 || got.Status != model.EnrollmentEnrolled || got.CompletedAt != nil {
			t.Errorf("empty course enrollment = %+v", got)
		}
	}

	if _, err := svc.RecalculateProgress(ctx, 999); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Errorf("missing enrollment: %v", err)
	}
}

func TestOptionalLessonsDoNotBlockCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.enrollmentService()
	course, lessons := testutil.SeedCourse(t, env.db, testutil.CourseLayout{{true, false}})
	enrollment := testutil.SeedEnrollment(t, env.db, 1, course.ID)

	result, err := svc.UpdateLessonProgress(ctx, 1, enrollment.ID, &validator.LessonProgressRequest{LessonID: lessons[1].ID, IsCompleted: true})
	if err != nil {
		t.Fatalf("optional lesson: %v", err)
	}
	if result.Enrollment.Progress != 0 || result.Enrollment.Status != model.EnrollmentEnrolled {
		t.Errorf("optional lesson moved progress: %+v", result.Enrollment)
	}

	result, err = svc.UpdateLessonProgress(ctx, 1, enrollment.ID, &validator.LessonProgressRequest{LessonID: lessons[0].ID, IsCompleted: true})
	if err != nil {
		t.Fatalf("required lesson: %v", err)
	}
	if result.Enrollment.Status != model.EnrollmentCompleted {
		t.Errorf("status = %s, want completed", result.Enrollment.Status)
	}
}

func TestEnroll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.enrollmentService()
	course, _ := testutil.SeedCourse(t, env.db, testutil.CourseLayout{{true}})

	enrollment, err := svc.Enroll(ctx, 5, course.ID)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if enrollment.Status != model.EnrollmentEnrolled || enrollment.Progress != 0 {
		t.Errorf("unexpected enrollment %+v", enrollment)
	}

	if _, err := svc.Enroll(ctx, 5, course.ID); !errors.Is(err, util.ErrAlreadyEnrolled) {
		t.Errorf("duplicate: %v", err)
	}
	if _, err := svc.Enroll(ctx, 5, 999); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("missing course: %v", err)
	}

	mine, err := svc.ListMine(ctx, 5)
	if err != nil || len(mine) != 1 {
		t.Errorf("ListMine = %v, %v", mine, err)
	}
}
