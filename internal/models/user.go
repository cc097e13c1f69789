package models

import (
	"time"

	"gorm.io/gorm"
)

// User 顾客账号
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                            // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`               // 邮箱（登录名）
	PasswordHash       string         `gorm:"not null" json:"-"`                               // 密码哈希
	Name               string         `gorm:"type:varchar(120)" json:"name"`                   // 昵称
	Phone              string         `gorm:"type:varchar(40);index" json:"phone"`             // 手机号
	Status             string         `gorm:"type:varchar(20);default:'active'" json:"status"` // 账号状态
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                     // Token 版本（整体吊销）
	TokenInvalidBefore *time.Time     `json:"-"`                                               // 此时间前签发的 Token 失效
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                      // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
