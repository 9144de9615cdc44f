package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeVideo = "video/"
	MimeImage = "image/"
	MimeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// 多选题答案分隔符
const MultiSelectDelimiter = ", "

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
)
