package model

import "gorm.io/datatypes"

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	FillBlank      QuestionType = "fill_blank"
	ShortAnswer    QuestionType = "short_answer"
	Sort           QuestionType = "sort"
)

var QuestionTypes = []QuestionType{SingleChoice, MultipleChoice, TrueFalse, FillBlank, ShortAnswer, Sort}

// IsMultiSelect 多选题按选项集合比对，其余题型按文本比对
func (t QuestionType) IsMultiSelect() bool {
	return t == MultipleChoice
}

// swagger:model Quiz
type Quiz struct {
	Model
	CourseID           *uint      `gorm:"index" json:"courseId,omitempty"`
	LessonID           *uint      `gorm:"index" json:"lessonId,omitempty"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	PassingScore       int        `gorm:"not null" json:"passingScore"` // 百分比 0-100
	ShowCorrectAnswers bool       `gorm:"not null" json:"showCorrectAnswers"`
	Questions          []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// TotalPoints 测验满分
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

// swagger:model Question
type Question struct {
	Model
	QuizID        uint           `gorm:"index;not null" json:"quizId"`
	Type          QuestionType   `gorm:"size:32;not null" json:"type"`
	Prompt        string         `gorm:"type:text" json:"prompt"`
	Options       datatypes.JSON `json:"options,omitempty"`
	CorrectAnswer string         `gorm:"type:text" json:"-"` // 多选题为 ", " 连接的选项
	Explanation   string         `gorm:"type:text" json:"-"`
	Points        int            `gorm:"not null" json:"points"`
	OrderIndex    int            `gorm:"not null" json:"orderIndex"`
}

func (Question) TableName() string {
	return "quiz_questions"
}
