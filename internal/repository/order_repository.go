package repository

import (
	"errors"
	"time"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	UpdateStatus(id uint, status string) error
	UpdatePaymentStatus(id uint, paymentStatus string, paidAt *time.Time) error
	List(filter OrderListFilter) ([]models.Order, int64, error)
	CountCompletedByUser(userID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// OrderListFilter 订单列表筛选
type OrderListFilter struct {
	UserID        uint
	OrderNo       string
	Status        string
	PaymentStatus string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Page          int
	PageSize      int
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// GetByID 根据ID获取订单（预加载订单行）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 根据订单号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").
		Where("order_no = ?", orderNo).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单（级联写入订单行）
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Update 更新订单
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdatePaymentStatus 更新支付状态
func (r *GormOrderRepository) UpdatePaymentStatus(id uint, paymentStatus string, paidAt *time.Time) error {
	updates := map[string]interface{}{"payment_status": paymentStatus}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// List 获取订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountCompletedByUser 统计用户历史完成订单数（首单券资格用）
func (r *GormOrderRepository) CountCompletedByUser(userID uint) (int64, error) {
	var total int64
	if err := r.db.Model(&models.Order{}).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{
			constants.OrderStatusCompleted,
			constants.OrderStatusDelivered,
		}).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
