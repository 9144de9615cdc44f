package service

import (
	"cemse_backend/internal/model"
	"math"
	"time"
)

// CalculateProgress 只统计必修课时：round(已完成必修 / 必修总数 * 100)，没有必修课时时为 0
func CalculateProgress(lessons []model.Lesson, rows []model.LessonProgress) int {
	completed := make(map[uint]bool, len(rows))
	for _, row := range rows {
		if row.IsCompleted {
			completed[row.LessonID] = true
		}
	}

	total, done := 0, 0
	for _, lesson := range lessons {
		if !lesson.IsRequired {
			continue
		}
		total++
		if completed[lesson.ID] {
			done++
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// ApplyProgress 写入进度并推进状态：enrolled -> in_progress -> completed。
// completed 之后不再回退，completedAt 只在第一次完成时写入。
func ApplyProgress(e *model.Enrollment, progress int, now time.Time) {
	e.Progress = progress

	switch {
	case progress == 100 && e.Status != model.EnrollmentCompleted:
		e.Status = model.EnrollmentCompleted
		e.CompletedAt = &now
		if e.StartedAt == nil {
			e.StartedAt = &now
		}
	case progress > 0 && e.Status == model.EnrollmentEnrolled:
		e.Status = model.EnrollmentInProgress
		if e.StartedAt == nil {
			e.StartedAt = &now
		}
	}
}

// MergeLessonProgress 把一次上报合并进已有记录：不会取消完成，时长和观看进度只增不减
func MergeLessonProgress(existing *model.LessonProgress, isCompleted bool, timeSpent int, videoProgress *float64, now time.Time) {
	if isCompleted && !existing.IsCompleted {
		existing.IsCompleted = true
		existing.CompletedAt = &now
	}
	if timeSpent > existing.TimeSpent {
		existing.TimeSpent = timeSpent
	}
	if videoProgress != nil {
		if *videoProgress > existing.VideoProgress {
			existing.VideoProgress = *videoProgress
		}
		existing.LastWatchedAt = &now
	}
}
