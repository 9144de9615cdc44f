package repository

import (
	"cemse_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) WithTx(tx *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: tx}
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).First(&course, id).Error
	return &course, err
}

// FindLessonsByCourse 按模块顺序、再按课时顺序展开整棵课程树
func (r *CourseRepository) FindLessonsByCourse(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.WithContext(ctx).
		Select("lessons.*").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id AND course_modules.deleted_at IS NULL").
		Where("course_modules.course_id = ?", courseID).
		Order("course_modules.order_index ASC, course_modules.id ASC, lessons.order_index ASC, lessons.id ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *CourseRepository) FindLessonByID(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).First(&lesson, id).Error
	return &lesson, err
}

func (r *CourseRepository) FindModuleByID(ctx context.Context, id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.WithContext(ctx).First(&module, id).Error
	return &module, err
}

// UpdateLessonVideo 只更新视频相关字段
func (r *CourseRepository) UpdateLessonVideo(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Model(&model.Lesson{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]interface{}{
			"video_key":      lesson.VideoKey,
			"thumbnail_key":  lesson.ThumbnailKey,
			"video_duration": lesson.VideoDuration,
			"video_format":   lesson.VideoFormat,
			"video_size":     lesson.VideoSize,
		}).Error
}
