package util

import "errors"

var (
	ErrUnauthorized            = errors.New("unauthorized")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrQuizNotFound            = errors.New("quiz not found")
	ErrCourseNotFound          = errors.New("course not found")
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrEnrollmentNotFound      = errors.New("enrollment not found")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrCertificateNotFound     = errors.New("certificate not found")
	ErrAttemptAlreadyCompleted = errors.New("attempt already completed")
	ErrAlreadyEnrolled         = errors.New("already enrolled in this course")
	ErrEnrollmentNotCompleted  = errors.New("course not completed yet")
	ErrLessonNotInCourse       = errors.New("lesson does not belong to the enrolled course")
	ErrVideoNotAvailable       = errors.New("lesson has no video")
	ErrInvalidVideoExt         = errors.New("unsupported video format")
	ErrInvalidChunk            = errors.New("invalid chunk number")
	ErrUploadProgressNotFound  = errors.New("upload not found or expired")
	ErrInvalidFileContent      = errors.New("invalid file content")
	ErrQuizNotInCourse         = errors.New("quiz does not belong to the enrolled course")
)
