package service

import (
	"cemse_backend/internal/model"
	"testing"
	"time"
)

func lessons(required ...bool) []model.Lesson {
	out := make([]model.Lesson, len(required))
	for i, r := range required {
		out[i].ID = uint(i + 1)
		out[i].IsRequired = r
	}
	return out
}

func completedRows(ids ...uint) []model.LessonProgress {
	rows := make([]model.LessonProgress, len(ids))
	for i, id := range ids {
		rows[i] = model.LessonProgress{LessonID: id, IsCompleted: true}
	}
	return rows
}

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name    string
		lessons []model.Lesson
		rows    []model.LessonProgress
		want    int
	}{
		{"empty course", nil, nil, 0},
		{"no required lessons", lessons(false, false), completedRows(1, 2), 0},
		{"three of four", lessons(true, true, true, true), completedRows(1, 2, 3), 75},
		{"all four", lessons(true, true, true, true), completedRows(1, 2, 3, 4), 100},
		{"optional lessons ignored", lessons(true, false, true), completedRows(2, 3), 50},
		{"rounds half up", lessons(true, true, true), completedRows(1, 2), 67},
		{"one third", lessons(true, true, true), completedRows(1), 33},
		{"incomplete rows ignored", lessons(true, true), []model.LessonProgress{{LessonID: 1}, {LessonID: 2, IsCompleted: true}}, 50},
		{"rows for other lessons ignored", lessons(true), completedRows(7), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateProgress(tt.lessons, tt.rows); got != tt.want {
				t.Errorf("CalculateProgress = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateProgressMonotonic(t *testing.T) {
	ls := lessons(true, false, true, true, true)
	prev := 0
	var done []uint
	for _, l := range ls {
		done = append(done, l.ID)
		got := CalculateProgress(ls, completedRows(done...))
		if got < prev {
			t.Fatalf("progress decreased from %d to %d", prev, got)
		}
		if again := CalculateProgress(ls, completedRows(done...)); again != got {
			t.Fatalf("recompute not idempotent: %d then %d", got, again)
		}
		prev = got
	}
}

func TestApplyProgressTransitions(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	e := &model.Enrollment{Status: model.EnrollmentEnrolled}

	ApplyProgress(e, 0, t0)
	if e.Status != model.EnrollmentEnrolled || e.StartedAt != nil {
		t.Fatalf("zero progress must not start enrollment: %+v", e)
	}

	ApplyProgress(e, 75, t0)
	if e.Status != model.EnrollmentInProgress || e.StartedAt == nil || !e.StartedAt.Equal(t0) {
		t.Fatalf("expected in_progress with startedAt: %+v", e)
	}

	t1 := t0.Add(time.Hour)
	ApplyProgress(e, 100, t1)
	if e.Status != model.EnrollmentCompleted || e.CompletedAt == nil || !e.CompletedAt.Equal(t1) {
		t.Fatalf("expected completed at t1: %+v", e)
	}
	if !e.StartedAt.Equal(t0) {
		t.Error("startedAt overwritten")
	}

	ApplyProgress(e, 100, t1.Add(time.Hour))
	if !e.CompletedAt.Equal(t1) {
		t.Error("completedAt stamped twice")
	}

	ApplyProgress(e, 80, t1.Add(2*time.Hour))
	if e.Status != model.EnrollmentCompleted || e.Progress != 80 {
		t.Errorf("completed enrollment must stay completed: %+v", e)
	}
}

func TestApplyProgressStraightToCompleted(t *testing.T) {
	now := time.Now()
	e := &model.Enrollment{Status: model.EnrollmentEnrolled}
	ApplyProgress(e, 100, now)
	if e.Status != model.EnrollmentCompleted || e.StartedAt == nil || e.CompletedAt == nil {
		t.Errorf("unexpected enrollment %+v", e)
	}
}

func TestMergeLessonProgress(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	row := &model.LessonProgress{}
	half, quarter := 0.5, 0.25

	MergeLessonProgress(row, false, 30, &half, t0)
	if row.IsCompleted || row.TimeSpent != 30 || row.VideoProgress != 0.5 || !row.LastWatchedAt.Equal(t0) {
		t.Fatalf("unexpected row %+v", row)
	}

	t1 := t0.Add(time.Minute)
	MergeLessonProgress(row, true, 20, &quarter, t1)
	if !row.IsCompleted || !row.CompletedAt.Equal(t1) {
		t.Fatalf("expected completion at t1: %+v", row)
	}
	if row.TimeSpent != 30 || row.VideoProgress != 0.5 {
		t.Errorf("time/video progress lowered: %+v", row)
	}
	if !row.LastWatchedAt.Equal(t1) {
		t.Error("lastWatchedAt not refreshed")
	}

	t2 := t1.Add(time.Minute)
	MergeLessonProgress(row, false, 60, nil, t2)
	if !row.IsCompleted || !row.CompletedAt.Equal(t1) {
		t.Errorf("lesson un-completed or completedAt restamped: %+v", row)
	}
	if row.TimeSpent != 60 || !row.LastWatchedAt.Equal(t1) {
		t.Errorf("unexpected row %+v", row)
	}
}
