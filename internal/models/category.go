package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 菜品分类
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                          // 主键
	Name      string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"` // 分类标签（菜品按名称引用）
	ImageURL  string         `gorm:"type:varchar(500)" json:"image_url"`            // 分类图片
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`             // 排序
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`           // 是否启用
	CreatedAt time.Time      `json:"created_at"`                                    // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
