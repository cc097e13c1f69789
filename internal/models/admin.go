package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin 管理员账号
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                 // 主键
	Username           string         `gorm:"uniqueIndex;not null" json:"username"` // 登录名
	PasswordHash       string         `gorm:"not null" json:"-"`                    // 密码哈希
	IsSuper            bool           `gorm:"not null;default:false" json:"is_super"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"` // Token 版本（整体吊销）
	TokenInvalidBefore *time.Time     `json:"-"`                           // 此时间前签发的 Token 失效
	CreatedAt          time.Time      `json:"created_at"`                  // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                  // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`              // 软删除时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
