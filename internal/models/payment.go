package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付记录
type Payment struct {
	ID            uint           `gorm:"primarykey" json:"id"`                          // 主键
	PaymentNo     string         `gorm:"uniqueIndex;not null" json:"payment_no"`        // 支付单号
	OrderID       uint           `gorm:"not null;index" json:"order_id"`                // 订单ID
	Provider      string         `gorm:"type:varchar(40);not null" json:"provider"`     // 支付提供方
	Amount        Money          `gorm:"type:decimal(20,2);not null" json:"amount"`     // 金额
	Currency      string         `gorm:"type:varchar(10);not null" json:"currency"`     // 币种
	Status        string         `gorm:"type:varchar(20);not null;index" json:"status"` // 状态
	TransactionID string         `gorm:"type:varchar(120);index" json:"transaction_id"` // 渠道交易号
	CodeURL       string         `gorm:"type:varchar(500)" json:"code_url"`             // 扫码链接
	PaidAt        *time.Time     `json:"paid_at"`                                       // 支付完成时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
