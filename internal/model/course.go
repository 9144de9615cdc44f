package model

// Course 课程 -> 模块 -> 课时 三级结构
// swagger:model Course
type Course struct {
	Model
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Modules     []Module `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Module
type Module struct {
	Model
	CourseID   uint     `gorm:"index;not null" json:"courseId"`
	Title      string   `gorm:"size:255;not null" json:"title"`
	OrderIndex int      `gorm:"not null" json:"orderIndex"`
	Lessons    []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (Module) TableName() string {
	return "course_modules"
}

// swagger:model Lesson
type Lesson struct {
	Model
	ModuleID      uint    `gorm:"index;not null" json:"moduleId"`
	Title         string  `gorm:"size:255;not null" json:"title"`
	OrderIndex    int     `gorm:"not null" json:"orderIndex"`
	IsRequired    bool    `gorm:"not null" json:"isRequired"`
	VideoKey      string  `gorm:"size:255" json:"-"`
	ThumbnailKey  string  `gorm:"size:255" json:"-"`
	VideoDuration float64 `gorm:"not null" json:"videoDuration"` // 秒
	VideoFormat   string  `gorm:"size:20" json:"videoFormat,omitempty"`
	VideoSize     int64   `gorm:"not null" json:"videoSize"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// HasVideo 课时是否已上传视频
func (l *Lesson) HasVideo() bool {
	return l.VideoKey != ""
}
