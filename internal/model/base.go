package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model 自增主键，课程结构与选课记录使用。
// 课程编辑工具下架模块或课时时走软删除，进度计算自动忽略。
type Model struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UUIDModel 对外暴露的记录（作答、答案、证书）用 UUID，避免被枚举；只追加不删除
type UUIDModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
