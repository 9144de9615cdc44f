package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentEnrolled   EnrollmentStatus = "enrolled"
	EnrollmentInProgress EnrollmentStatus = "in_progress"
	EnrollmentCompleted  EnrollmentStatus = "completed"
)

// Enrollment 学员选课记录
// swagger:model Enrollment
type Enrollment struct {
	Model
	StudentID       uint             `gorm:"uniqueIndex:idx_student_course;not null" json:"studentId"`
	CourseID        uint             `gorm:"uniqueIndex:idx_student_course;not null" json:"courseId"`
	Progress        int              `gorm:"not null" json:"progress"` // 0-100
	Status          EnrollmentStatus `gorm:"size:20;not null" json:"status"`
	StartedAt       *time.Time       `json:"startedAt"`
	CompletedAt     *time.Time       `json:"completedAt"`
	CurrentModuleID *uint            `json:"currentModuleId"`
	CurrentLessonID *uint            `json:"currentLessonId"`
	TimeSpent       int              `gorm:"not null" json:"timeSpent"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// LessonProgress 以 (EnrollmentID, LessonID) 为联合主键
// swagger:model LessonProgress
type LessonProgress struct {
	EnrollmentID  uint       `gorm:"primaryKey;autoIncrement:false" json:"enrollmentId"`
	LessonID      uint       `gorm:"primaryKey;autoIncrement:false" json:"lessonId"`
	IsCompleted   bool       `gorm:"not null" json:"isCompleted"`
	CompletedAt   *time.Time `json:"completedAt"`
	TimeSpent     int        `gorm:"not null" json:"timeSpent"`
	VideoProgress float64    `gorm:"not null" json:"videoProgress"` // 0.0-1.0
	LastWatchedAt *time.Time `json:"lastWatchedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
