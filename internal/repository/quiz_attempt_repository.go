package repository

import (
	"cemse_backend/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) WithTx(tx *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: tx}
}

// Create 只写作答记录本身，答案由 CreateAnswers 写入
func (r *QuizAttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Omit("Answers").Create(attempt).Error
}

func (r *QuizAttemptRepository) CreateAnswers(ctx context.Context, answers []model.QuizAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&answers).Error
}

func (r *QuizAttemptRepository) FindByID(ctx context.Context, id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&attempt, "id = ?", id).Error
	return &attempt, err
}

func (r *QuizAttemptRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&attempt, "id = ?", id).Error
	return &attempt, err
}

// Finalize 仅当作答仍未完成时写入结果，返回是否更新成功
func (r *QuizAttemptRepository) Finalize(ctx context.Context, attempt *model.QuizAttempt) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("id = ? AND completed_at IS NULL", attempt.ID).
		Updates(map[string]interface{}{
			"completed_at":  attempt.CompletedAt,
			"score":         attempt.Score,
			"passed":        attempt.Passed,
			"time_spent":    attempt.TimeSpent,
			"enrollment_id": attempt.EnrollmentID,
		})
	return result.RowsAffected == 1, result.Error
}

// ListCompletedByQuiz 导出用，按完成时间排序
func (r *QuizAttemptRepository) ListCompletedByQuiz(ctx context.Context, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("quiz_id = ? AND completed_at IS NOT NULL", quizID).
		Order("completed_at ASC").
		Find(&attempts).Error
	return attempts, err
}
