package model

import "time"

// Certificate 课程结业证书，每个选课记录最多一张
// swagger:model Certificate
type Certificate struct {
	UUIDModel
	EnrollmentID      uint      `gorm:"uniqueIndex;not null" json:"enrollmentId"`
	StudentID         uint      `gorm:"index;not null" json:"studentId"`
	CourseID          uint      `gorm:"index;not null" json:"courseId"`
	CertificateNumber string    `gorm:"size:64;uniqueIndex;not null" json:"certificateNumber"`
	IssuedAt          time.Time `gorm:"not null" json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
