package service

import (
	"cemse_backend/internal/model"
	"cemse_backend/internal/repository"
	"cemse_backend/internal/util"
	"cemse_backend/pkg/logger"
	"cemse_backend/pkg/monitoring"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CertificateService struct {
	Enrollments  *repository.EnrollmentRepository
	Certificates *repository.CertificateRepository
	now          func() time.Time
}

func NewCertificateService(enrollments *repository.EnrollmentRepository, certificates *repository.CertificateRepository) *CertificateService {
	return &CertificateService{
		Enrollments:  enrollments,
		Certificates: certificates,
		now:          time.Now,
	}
}

// CertificateNumber 形如 CEMSE-20260115-1A2B3C4D
func CertificateNumber(issuedAt time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("CEMSE-%s-%s", issuedAt.Format("20060102"), strings.ToUpper(id[:8]))
}

// Issue 只为已完成的选课记录颁发证书；重复调用返回已有证书
func (s *CertificateService) Issue(ctx context.Context, userID, enrollmentID uint) (*model.Certificate, bool, error) {
	enrollment, err := s.Enrollments.FindByID(ctx, enrollmentID)
	if enrollment, err = ownedEnrollment(enrollment, err, userID); err != nil {
		return nil, false, err
	}
	if enrollment.Status != model.EnrollmentCompleted {
		return nil, false, util.ErrEnrollmentNotCompleted
	}

	if existing, err := s.Certificates.FindByEnrollment(ctx, enrollmentID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("load certificate: %w", err)
	}

	now := s.now()
	cert := &model.Certificate{
		EnrollmentID:      enrollment.ID,
		StudentID:         enrollment.StudentID,
		CourseID:          enrollment.CourseID,
		CertificateNumber: CertificateNumber(now),
		IssuedAt:          now,
	}
	if err := s.Certificates.Create(ctx, cert); err != nil {
		// 并发颁发时唯一索引冲突，返回先写入的那张
		if existing, findErr := s.Certificates.FindByEnrollment(ctx, enrollmentID); findErr == nil {
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create certificate: %w", err)
	}

	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("Certificate issued",
		zap.String("certificate_number", cert.CertificateNumber),
		zap.Uint("enrollment_id", enrollmentID),
		zap.Uint("student_id", userID),
	)
	return cert, true, nil
}

func (s *CertificateService) Verify(ctx context.Context, number string) (*model.Certificate, error) {
	cert, err := s.Certificates.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("load certificate: %w", err)
	}
	return cert, nil
}
