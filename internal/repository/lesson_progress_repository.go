package repository

import (
	"cemse_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonProgressRepository struct {
	DB *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: db}
}

func (r *LessonProgressRepository) WithTx(tx *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: tx}
}

func (r *LessonProgressRepository) Find(ctx context.Context, enrollmentID, lessonID uint) (*model.LessonProgress, error) {
	var row model.LessonProgress
	err := r.DB.WithContext(ctx).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		First(&row).Error
	return &row, err
}

func (r *LessonProgressRepository) ListByEnrollment(ctx context.Context, enrollmentID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("lesson_id ASC").
		Find(&rows).Error
	return rows, err
}

// Upsert 以 (enrollment_id, lesson_id) 为冲突键写入，合并逻辑由调用方完成
func (r *LessonProgressRepository) Upsert(ctx context.Context, row *model.LessonProgress) error {
	// 更新路径上 gorm 不会刷新非零的 UpdatedAt
	row.UpdatedAt = time.Now()
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_completed", "completed_at", "time_spent", "video_progress", "last_watched_at", "updated_at",
			}),
		}).
		Create(row).Error
}
