package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem 菜品
type MenuItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                // 主键
	Name        string         `gorm:"type:varchar(200);not null;index" json:"name"`        // 菜品名称
	Description string         `gorm:"type:text" json:"description"`                        // 描述
	Price       Money          `gorm:"type:decimal(20,2);not null" json:"price"`            // 单价
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`                  // 图片
	Category    string         `gorm:"type:varchar(120);index" json:"category"`             // 分类标签（自由文本，比较时忽略大小写）
	IsAvailable bool           `gorm:"not null;default:true;index" json:"is_available"`     // 是否可售
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}
