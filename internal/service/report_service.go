package service

import (
	"bytes"
	"cemse_backend/internal/repository"
	"cemse_backend/internal/util"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var attemptExportHeaders = []string{
	"attempt_id", "student_id", "enrollment_id", "started_at", "completed_at",
	"score", "total_points", "percentage", "passed", "time_spent_seconds",
}

type ReportService struct {
	QuizService *QuizAttemptService
	Attempts    *repository.QuizAttemptRepository
}

func NewReportService(quizService *QuizAttemptService, attempts *repository.QuizAttemptRepository) *ReportService {
	return &ReportService{QuizService: quizService, Attempts: attempts}
}

// ExportQuizAttempts 每个已完成作答一行，返回 xlsx 内容和建议文件名
func (s *ReportService) ExportQuizAttempts(ctx context.Context, quizID uint) ([]byte, string, error) {
	quiz, err := s.QuizService.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, "", err
	}
	attempts, err := s.Attempts.ListCompletedByQuiz(ctx, quizID)
	if err != nil {
		return nil, "", fmt.Errorf("list attempts: %w", err)
	}

	total := quiz.TotalPoints()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, h := range attemptExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, a := range attempts {
		enrollmentID := ""
		if a.EnrollmentID != nil {
			enrollmentID = fmt.Sprint(*a.EnrollmentID)
		}
		completedAt := ""
		if a.CompletedAt != nil {
			completedAt = a.CompletedAt.Format(util.TimeFormat)
		}
		percentage := 0.0
		if total > 0 {
			percentage = float64(a.Score) / float64(total) * 100
		}

		values := []any{
			a.ID,
			a.StudentID,
			enrollmentID,
			a.StartedAt.Format(util.TimeFormat),
			completedAt,
			a.Score,
			total,
			fmt.Sprintf("%.2f", percentage),
			a.Passed,
			a.TimeSpent,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "J", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("quiz-%d-attempts.xlsx", quizID), nil
}
