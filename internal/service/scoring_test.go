package service

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/validator"
	"testing"
)

func question(id uint, qt model.QuestionType, correct string, points int) model.Question {
	q := model.Question{Type: qt, CorrectAnswer: correct, Points: points, Explanation: "because"}
	q.ID = id
	return q
}

func TestIsAnswerCorrect(t *testing.T) {
	tests := []struct {
		name      string
		qt        model.QuestionType
		submitted string
		correct   string
		want      bool
	}{
		{"case and whitespace", model.FillBlank, " Paris ", "paris", true},
		{"true false", model.TrueFalse, "TRUE", "true", true},
		{"single choice mismatch", model.SingleChoice, "B", "A", false},
		{"empty never matches", model.ShortAnswer, "", "paris", false},
		{"empty matches empty", model.ShortAnswer, "  ", "", true},
		{"multi any order", model.MultipleChoice, "C, A, B", "A, B, C", true},
		{"multi case sensitive", model.MultipleChoice, "a, B, C", "A, B, C", false},
		{"multi missing option", model.MultipleChoice, "A, B", "A, B, C", false},
		{"multi extra option", model.MultipleChoice, "A, B, C, D", "A, B, C", false},
		{"multi duplicates count", model.MultipleChoice, "A, A, B", "A, B, B", false},
		{"sort compares as text", model.Sort, "c, a, b", "A, B, C", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAnswerCorrect(tt.qt, tt.submitted, tt.correct); got != tt.want {
				t.Errorf("IsAnswerCorrect(%q, %q) = %v, want %v", tt.submitted, tt.correct, got, tt.want)
			}
		})
	}
}

func TestScoreQuiz(t *testing.T) {
	twoQuestions := &model.Quiz{
		PassingScore: 60,
		Questions: []model.Question{
			question(1, model.SingleChoice, "A", 5),
			question(2, model.SingleChoice, "B", 5),
		},
	}

	tests := []struct {
		name       string
		quiz       *model.Quiz
		answers    []validator.SubmittedAnswer
		wantScore  int
		wantTotal  int
		wantPassed bool
		wantTime   int
	}{
		{
			name:      "one of two correct fails at 60",
			quiz:      twoQuestions,
			answers:   []validator.SubmittedAnswer{{QuestionID: 1, Answer: "A", TimeSpent: 10}, {QuestionID: 2, Answer: "C", TimeSpent: 5}},
			wantScore: 5, wantTotal: 10, wantPassed: false, wantTime: 15,
		},
		{
			name:      "both correct passes",
			quiz:      twoQuestions,
			answers:   []validator.SubmittedAnswer{{QuestionID: 2, Answer: "b"}, {QuestionID: 1, Answer: "a"}},
			wantScore: 10, wantTotal: 10, wantPassed: true,
		},
		{
			name:      "missing answers scored incorrect",
			quiz:      twoQuestions,
			answers:   []validator.SubmittedAnswer{},
			wantScore: 0, wantTotal: 10, wantPassed: false,
		},
		{
			name:      "unknown question ignored",
			quiz:      twoQuestions,
			answers:   []validator.SubmittedAnswer{{QuestionID: 99, Answer: "A", TimeSpent: 30}, {QuestionID: 1, Answer: "A", TimeSpent: 4}},
			wantScore: 5, wantTotal: 10, wantPassed: false, wantTime: 4,
		},
		{
			name:      "first duplicate wins",
			quiz:      twoQuestions,
			answers:   []validator.SubmittedAnswer{{QuestionID: 1, Answer: "X"}, {QuestionID: 1, Answer: "A"}, {QuestionID: 2, Answer: "B"}},
			wantScore: 5, wantTotal: 10, wantPassed: false,
		},
		{
			name:      "no questions never passes",
			quiz:      &model.Quiz{PassingScore: 0},
			answers:   []validator.SubmittedAnswer{{QuestionID: 1, Answer: "A"}},
			wantScore: 0, wantTotal: 0, wantPassed: false,
		},
		{
			name:      "zero passing score passes with nothing right",
			quiz:      &model.Quiz{PassingScore: 0, Questions: []model.Question{question(1, model.TrueFalse, "true", 1)}},
			answers:   []validator.SubmittedAnswer{{QuestionID: 1, Answer: "false"}},
			wantScore: 0, wantTotal: 1, wantPassed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreQuiz(tt.quiz, tt.answers)
			if got.EarnedPoints != tt.wantScore || got.TotalPoints != tt.wantTotal {
				t.Errorf("score = %d/%d, want %d/%d", got.EarnedPoints, got.TotalPoints, tt.wantScore, tt.wantTotal)
			}
			if got.Passed != tt.wantPassed {
				t.Errorf("passed = %v, want %v", got.Passed, tt.wantPassed)
			}
			if got.TimeSpent != tt.wantTime {
				t.Errorf("timeSpent = %d, want %d", got.TimeSpent, tt.wantTime)
			}
			if len(got.Answers) != len(tt.quiz.Questions) {
				t.Fatalf("recorded %d answers, want one per question (%d)", len(got.Answers), len(tt.quiz.Questions))
			}
			for i, a := range got.Answers {
				if a.QuestionID != tt.quiz.Questions[i].ID || a.OrderIndex != i {
					t.Errorf("answer %d out of question order: %+v", i, a)
				}
			}
			if got.EarnedPoints > got.TotalPoints {
				t.Error("score exceeds total points")
			}
		})
	}
}

func TestIsPassingBoundary(t *testing.T) {
	tests := []struct {
		earned, total, passing int
		want                   bool
	}{
		{6, 10, 60, true},
		{59, 100, 60, false},
		{2, 3, 67, false}, // 66.67%
		{2, 3, 66, true},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		if got := IsPassing(tt.earned, tt.total, tt.passing); got != tt.want {
			t.Errorf("IsPassing(%d, %d, %d) = %v, want %v", tt.earned, tt.total, tt.passing, got, tt.want)
		}
	}
}
