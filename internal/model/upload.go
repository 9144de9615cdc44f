package model

import "time"

// UploadProgress 分片上传进度，保存在 Redis 中
type UploadProgress struct {
	Identifier     string       `json:"identifier"`
	LessonID       uint         `json:"lessonId"`
	Filename       string       `json:"filename"`
	TotalChunks    int          `json:"totalChunks"`
	UploadedChunks int          `json:"uploadedChunks"`
	FileSize       int64        `json:"fileSize"`
	Chunks         map[int]bool `json:"chunks"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// IsComplete 所有分片均已到达
func (p *UploadProgress) IsComplete() bool {
	return p.TotalChunks > 0 && p.UploadedChunks == p.TotalChunks
}
