package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠券
// Type 取值统一为大写规范词表：PERCENT / BUY_X / FIRST_ORDER / DATE_RANGE。
type Coupon struct {
	ID          uint           `gorm:"primarykey" json:"id"`                     // 主键
	Code        string         `gorm:"uniqueIndex;not null" json:"code"`         // 优惠码（存储前统一大写）
	Type        string         `gorm:"type:varchar(40);not null" json:"type"`    // 类型
	Description string         `gorm:"type:varchar(500)" json:"description"`     // 描述
	Value       Money          `gorm:"type:decimal(20,2);not null" json:"value"` // 数值（百分比或固定减免金额）
	MinQty      int            `gorm:"not null;default:0" json:"min_qty"`        // BUY_X 的最低数量门槛
	Category    string         `gorm:"type:varchar(120)" json:"category"`        // BUY_X 的分类限定（可空）
	StartDate   *time.Time     `gorm:"index" json:"start_date"`                  // 生效时间（空表示不限）
	EndDate     *time.Time     `gorm:"index" json:"end_date"`                    // 失效时间（空表示不限）
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`       // 展示图片
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`   // 是否启用
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
