package service

import (
	"bytes"
	"cemse_backend/internal/model"
	"cemse_backend/internal/testutil"
	"cemse_backend/internal/util"
	"cemse_backend/internal/validator"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportQuizAttempts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quizSvc := env.quizService()
	quiz := testutil.SeedQuiz(t, env.db, 50, false,
		newQuestion(model.SingleChoice, "A", 2),
		newQuestion(model.SingleChoice, "B", 2),
	)

	for _, answer := range []string{"A", "X"} {
		_, err := quizSvc.Complete(ctx, 1, &validator.CompleteAttemptRequest{
			QuizID:  quiz.ID,
			Answers: []validator.SubmittedAnswer{{QuestionID: quiz.Questions[0].ID, Answer: answer}},
		})
		if err != nil {
			t.Fatalf("Complete: %v", err)
		}
	}
	// 未完成的作答不导出
	if _, err := quizSvc.Start(ctx, 2, &validator.StartAttemptRequest{QuizID: quiz.ID}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	svc := NewReportService(quizSvc, env.attempts)
	data, filename, err := svc.ExportQuizAttempts(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("ExportQuizAttempts: %v", err)
	}
	if filename == "" {
		t.Error("empty filename")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "attempt_id" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][5] != "2" || rows[1][6] != "4" || rows[1][7] != "50.00" || rows[1][8] != "TRUE" {
		t.Errorf("first row = %v", rows[1])
	}
	if rows[2][5] != "0" || rows[2][8] != "FALSE" {
		t.Errorf("second row = %v", rows[2])
	}

	if _, _, err := svc.ExportQuizAttempts(ctx, 999); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("missing quiz: %v", err)
	}
}
