package controller

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/service"
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// QuestionView 学员看到的题目，不含答案
type QuestionView struct {
	ID         uint               `json:"id"`
	Type       model.QuestionType `json:"type"`
	Prompt     string             `json:"prompt"`
	Options    datatypes.JSON     `json:"options,omitempty"`
	Points     int                `json:"points"`
	OrderIndex int                `json:"orderIndex"`
}

type QuizView struct {
	ID           uint           `json:"id"`
	CourseID     *uint          `json:"courseId,omitempty"`
	LessonID     *uint          `json:"lessonId,omitempty"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	PassingScore int            `json:"passingScore"`
	TotalPoints  int            `json:"totalPoints"`
	Questions    []QuestionView `json:"questions"`
}

type AnswerView struct {
	QuestionID    uint   `json:"questionId"`
	Answer        string `json:"answer"`
	IsCorrect     bool   `json:"isCorrect"`
	TimeSpent     int    `json:"timeSpent"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

type AttemptView struct {
	ID           string       `json:"id"`
	QuizID       uint         `json:"quizId"`
	StudentID    uint         `json:"studentId"`
	EnrollmentID *uint        `json:"enrollmentId,omitempty"`
	StartedAt    time.Time    `json:"startedAt"`
	CompletedAt  *time.Time   `json:"completedAt"`
	Score        int          `json:"score"`
	TotalPoints  int          `json:"totalPoints"`
	Passed       bool         `json:"passed"`
	TimeSpent    int          `json:"timeSpent"`
	Answers      []AnswerView `json:"answers"`
}

func newQuizView(quiz *model.Quiz) QuizView {
	view := QuizView{
		ID:           quiz.ID,
		CourseID:     quiz.CourseID,
		LessonID:     quiz.LessonID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		PassingScore: quiz.PassingScore,
		TotalPoints:  quiz.TotalPoints(),
		Questions:    make([]QuestionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, QuestionView{
			ID:         q.ID,
			Type:       q.Type,
			Prompt:     q.Prompt,
			Options:    q.Options,
			Points:     q.Points,
			OrderIndex: q.OrderIndex,
		})
	}
	return view
}

// newAttemptView 正确答案和解析只在测验允许时返回
func newAttemptView(detail *service.AttemptDetail) AttemptView {
	attempt := detail.Attempt
	view := AttemptView{
		ID:           attempt.ID,
		QuizID:       attempt.QuizID,
		StudentID:    attempt.StudentID,
		EnrollmentID: attempt.EnrollmentID,
		StartedAt:    attempt.StartedAt,
		CompletedAt:  attempt.CompletedAt,
		Score:        attempt.Score,
		TotalPoints:  detail.Quiz.TotalPoints(),
		Passed:       attempt.Passed,
		TimeSpent:    attempt.TimeSpent,
		Answers:      make([]AnswerView, 0, len(attempt.Answers)),
	}

	questions := make(map[uint]model.Question, len(detail.Quiz.Questions))
	for _, q := range detail.Quiz.Questions {
		questions[q.ID] = q
	}
	reveal := detail.Quiz.ShowCorrectAnswers && attempt.IsCompleted()

	for _, a := range attempt.Answers {
		av := AnswerView{
			QuestionID: a.QuestionID,
			Answer:     a.Answer,
			IsCorrect:  a.IsCorrect,
			TimeSpent:  a.TimeSpent,
		}
		if q, ok := questions[a.QuestionID]; ok && reveal {
			av.CorrectAnswer = q.CorrectAnswer
			av.Explanation = q.Explanation
		}
		view.Answers = append(view.Answers, av)
	}
	return view
}

type QuizAttemptController struct {
	Service   *service.QuizAttemptService
	Validator *validator.Validator
}

func NewQuizAttemptController(svc *service.QuizAttemptService, v *validator.Validator) *QuizAttemptController {
	return &QuizAttemptController{Service: svc, Validator: v}
}

// @Summary 获取测验
// @Description 返回测验及题目，不包含正确答案
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=QuizView}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizAttemptController) GetQuiz(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	quiz, err := c.Service.GetQuiz(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, newQuizView(quiz))
}

// @Summary 开始作答
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body validator.StartAttemptRequest true "测验信息"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Router /api/quiz-attempts [post]
func (c *QuizAttemptController) StartAttempt(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	var req validator.StartAttemptRequest
	if !bindJSON(ctx, c.Validator, &req) {
		return
	}

	attempt, err := c.Service.Start(ctx.Request.Context(), user.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

// @Summary 提交作答
// @Description 评分并保存作答记录，answers 缺失时返回 400
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body validator.CompleteAttemptRequest true "作答内容"
// @Success 200 {object} util.Response{data=AttemptView}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz-attempts/complete [post]
func (c *QuizAttemptController) CompleteAttempt(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	var req validator.CompleteAttemptRequest
	if !bindJSON(ctx, c.Validator, &req) {
		return
	}

	detail, err := c.Service.Complete(ctx.Request.Context(), user.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, newAttemptView(detail))
}

// @Summary 查看作答
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path string true "作答ID"
// @Success 200 {object} util.Response{data=AttemptView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz-attempts/{id} [get]
func (c *QuizAttemptController) GetAttempt(ctx *gin.Context) {
	user := currentUser(ctx)
	if user == nil {
		return
	}

	detail, err := c.Service.GetAttempt(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, newAttemptView(detail))
}
