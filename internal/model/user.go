package model

// UserRole 来自认证令牌，用户资料本身由外部身份系统维护
type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)
