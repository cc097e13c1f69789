package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单号
	UserID        uint           `gorm:"not null;index" json:"user_id"`                               // 用户ID
	Status        string         `gorm:"type:varchar(20);not null;index" json:"status"`               // 订单状态
	Address       string         `gorm:"type:varchar(500)" json:"address"`                            // 配送地址
	Phone         string         `gorm:"type:varchar(40)" json:"phone"`                               // 联系电话
	Note          string         `gorm:"type:varchar(500)" json:"note"`                               // 备注
	Subtotal      Money          `gorm:"type:decimal(20,2);not null" json:"subtotal"`                 // 商品小计
	Discount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`       // 优惠金额
	DeliveryFee   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`   // 配送费
	Total         Money          `gorm:"type:decimal(20,2);not null" json:"total"`                    // 应付总额
	CouponCode    string         `gorm:"type:varchar(60)" json:"coupon_code"`                         // 使用的优惠码
	PaymentStatus string         `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"` // 支付状态
	PaidAt        *time.Time     `json:"paid_at"`                                                     // 支付时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项快照
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项（下单时的菜品快照）
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                         // 主键
	OrderID    uint      `gorm:"not null;index" json:"order_id"`               // 订单ID
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`           // 菜品ID
	Name       string    `gorm:"type:varchar(200);not null" json:"name"`       // 菜品名称快照
	Category   string    `gorm:"type:varchar(120)" json:"category"`            // 分类快照
	Price      Money     `gorm:"type:decimal(20,2);not null" json:"price"`     // 单价快照
	Quantity   int       `gorm:"not null" json:"quantity"`                     // 数量
	LineTotal  Money     `gorm:"type:decimal(20,2);not null" json:"line_total"` // 行小计
	CreatedAt  time.Time `json:"created_at"`                                   // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
