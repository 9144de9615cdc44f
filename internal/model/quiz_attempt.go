package model

import "time"

// QuizAttempt 一次测验作答，CompletedAt 为空表示仍在进行中
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDModel
	QuizID       uint         `gorm:"index;not null" json:"quizId"`
	StudentID    uint         `gorm:"index;not null" json:"studentId"`
	EnrollmentID *uint        `gorm:"index" json:"enrollmentId,omitempty"`
	StartedAt    time.Time    `gorm:"not null" json:"startedAt"`
	CompletedAt  *time.Time   `json:"completedAt"`
	Score        int          `gorm:"not null" json:"score"`
	Passed       bool         `gorm:"not null" json:"passed"`
	TimeSpent    int          `gorm:"not null" json:"timeSpent"` // 秒
	Answers      []QuizAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}

// swagger:model QuizAnswer
type QuizAnswer struct {
	UUIDModel
	AttemptID  string `gorm:"type:varchar(36);index;not null" json:"attemptId"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Answer     string `gorm:"type:text" json:"answer"`
	IsCorrect  bool   `gorm:"not null" json:"isCorrect"`
	TimeSpent  int    `gorm:"not null" json:"timeSpent"`
	OrderIndex int    `gorm:"not null" json:"orderIndex"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
