package models

import (
	"time"

	"gorm.io/gorm"
)

// Device 用户推送设备
type Device struct {
	ID        uint           `gorm:"primarykey" json:"id"`                       // 主键
	UserID    uint           `gorm:"not null;index" json:"user_id"`              // 用户ID
	Platform  string         `gorm:"type:varchar(20);not null" json:"platform"`  // 平台（android/ios/web）
	Token     string         `gorm:"type:varchar(500);uniqueIndex;not null" json:"token"` // 推送令牌
	CreatedAt time.Time      `json:"created_at"`                                 // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                    // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (Device) TableName() string {
	return "devices"
}
