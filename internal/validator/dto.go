package validator

// SubmittedAnswer 多选题答案以 ", " 连接
type SubmittedAnswer struct {
	QuestionID uint   `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
	TimeSpent  int    `json:"timeSpent" validate:"min=0"`
}

// CompleteAttemptRequest answers 可以为空数组，但不能缺失
type CompleteAttemptRequest struct {
	QuizID       uint              `json:"quizId" validate:"required"`
	EnrollmentID *uint             `json:"enrollmentId"`
	AttemptID    *string           `json:"attemptId" validate:"omitempty,uuid"`
	Answers      []SubmittedAnswer `json:"answers" validate:"required,dive"`
}

type StartAttemptRequest struct {
	QuizID       uint  `json:"quizId" validate:"required"`
	EnrollmentID *uint `json:"enrollmentId"`
}

type LessonProgressRequest struct {
	LessonID      uint     `json:"lessonId" validate:"required"`
	IsCompleted   bool     `json:"isCompleted"`
	TimeSpent     int      `json:"timeSpent" validate:"min=0"`
	VideoProgress *float64 `json:"videoProgress" validate:"omitempty,fraction"`
}

type EnrollRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
}

// ChunkUploadRequest 分片上传的表单字段，chunkNumber 从 0 开始
type ChunkUploadRequest struct {
	Identifier  string `form:"identifier" validate:"required,upload_id"`
	Filename    string `form:"filename" validate:"required,max=255"`
	ChunkNumber int    `form:"chunkNumber" validate:"min=0,ltfield=TotalChunks"`
	TotalChunks int    `form:"totalChunks" validate:"required,min=1,max=10000"`
	FileSize    int64  `form:"fileSize" validate:"min=0"`
}
