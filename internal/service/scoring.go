package service

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"
	"sort"
	"strings"
)

// ScoredAnswer 每道题一条，未作答的题目以空字符串计
type ScoredAnswer struct {
	QuestionID    uint
	Answer        string
	IsCorrect     bool
	TimeSpent     int
	CorrectAnswer string
	Explanation   string
	OrderIndex    int
}

type ScoreResult struct {
	TotalPoints  int
	EarnedPoints int
	Passed       bool
	TimeSpent    int
	Answers      []ScoredAnswer
}

// Percentage 得分率，满分为 0 时返回 0
func (r ScoreResult) Percentage() float64 {
	if r.TotalPoints == 0 {
		return 0
	}
	return float64(r.EarnedPoints) / float64(r.TotalPoints) * 100
}

// ScoreQuiz 按题目顺序评分，不做任何持久化
func ScoreQuiz(quiz *model.Quiz, submitted []validator.SubmittedAnswer) ScoreResult {
	byQuestion := make(map[uint]validator.SubmittedAnswer, len(submitted))
	for _, a := range submitted {
		// 同一题重复提交时以第一次为准
		if _, ok := byQuestion[a.QuestionID]; !ok {
			byQuestion[a.QuestionID] = a
		}
	}

	result := ScoreResult{Answers: make([]ScoredAnswer, 0, len(quiz.Questions))}
	for i, q := range quiz.Questions {
		result.TotalPoints += q.Points

		sub := byQuestion[q.ID]
		correct := IsAnswerCorrect(q.Type, sub.Answer, q.CorrectAnswer)
		if correct {
			result.EarnedPoints += q.Points
		}
		result.TimeSpent += sub.TimeSpent

		result.Answers = append(result.Answers, ScoredAnswer{
			QuestionID:    q.ID,
			Answer:        sub.Answer,
			IsCorrect:     correct,
			TimeSpent:     sub.TimeSpent,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			OrderIndex:    i,
		})
	}

	result.Passed = IsPassing(result.EarnedPoints, result.TotalPoints, quiz.PassingScore)
	return result
}

// IsAnswerCorrect 多选题按选项集合比对（区分大小写），其余题型忽略首尾空白和大小写
func IsAnswerCorrect(qt model.QuestionType, submitted, correct string) bool {
	if qt.IsMultiSelect() {
		return equalOptionSets(submitted, correct)
	}
	return strings.ToLower(strings.TrimSpace(submitted)) == strings.ToLower(strings.TrimSpace(correct))
}

func equalOptionSets(a, b string) bool {
	as := strings.Split(a, util.MultiSelectDelimiter)
	bs := strings.Split(b, util.MultiSelectDelimiter)
	if len(as) != len(bs) {
		return false
	}
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// IsPassing earned/total*100 >= passingScore，用整数比较避免浮点误差
func IsPassing(earned, total, passingScore int) bool {
	if total <= 0 {
		return false
	}
	return earned*100 >= passingScore*total
}
