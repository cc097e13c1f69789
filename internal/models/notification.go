package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 推送通知记录
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`                            // 主键
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`         // 标题
	Body      string         `gorm:"type:varchar(1000)" json:"body"`                  // 正文
	ImageURL  string         `gorm:"type:varchar(500)" json:"image_url"`              // 图片
	Audience  string         `gorm:"type:varchar(20);not null" json:"audience"`       // 受众（all/user）
	UserID    uint           `gorm:"index" json:"user_id"`                            // 受众为 user 时的目标用户
	Status    string         `gorm:"type:varchar(20);not null;index" json:"status"`   // 发送状态
	SentCount int            `gorm:"not null;default:0" json:"sent_count"`            // 成功设备数
	FailCount int            `gorm:"not null;default:0" json:"fail_count"`            // 失败设备数
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                      // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
