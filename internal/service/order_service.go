package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/delicute/delicute-api/internal/config"
	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/logger"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/queue"
	"github.com/delicute/delicute-api/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单业务服务
type OrderService struct {
	db             *gorm.DB
	cfg            *config.Config
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	userRepo       repository.UserRepository
	pricingService *PricingService
	settingService *SettingService
	emailService   *EmailService
	queueClient    *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	db *gorm.DB,
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	pricingService *PricingService,
	settingService *SettingService,
	emailService *EmailService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		db:             db,
		cfg:            cfg,
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		userRepo:       userRepo,
		pricingService: pricingService,
		settingService: settingService,
		emailService:   emailService,
		queueClient:    queueClient,
	}
}

// CheckoutInput 下单输入
type CheckoutInput struct {
	Address    string
	Phone      string
	Note       string
	CouponCode string
}

// Checkout 从购物车下单
// 下单时重新走一遍计价引擎，券不合格即拒绝下单；
// 订单行是下单时刻的菜品快照，之后清空购物车。
func (s *OrderService) Checkout(userID uint, input CheckoutInput) (*models.Order, error) {
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, ErrAddressRequired
	}

	quote, err := s.pricingService.QuoteCart(userID, input.CouponCode)
	if err != nil {
		return nil, err
	}
	if len(quote.Items) == 0 {
		return nil, ErrCartEmpty
	}
	if quote.Coupon != nil && !quote.Coupon.Valid {
		return nil, fmt.Errorf("%w: %s", ErrCouponInvalid, quote.Coupon.Message)
	}

	order := &models.Order{
		OrderNo:       generateOrderNo(),
		UserID:        userID,
		Status:        constants.OrderStatusPending,
		Address:       address,
		Phone:         strings.TrimSpace(input.Phone),
		Note:          strings.TrimSpace(input.Note),
		Subtotal:      quote.Subtotal,
		Discount:      quote.Discount,
		DeliveryFee:   quote.DeliveryFee,
		Total:         quote.Total,
		PaymentStatus: constants.PaymentStatusUnpaid,
	}
	if quote.Coupon != nil {
		order.CouponCode = quote.Coupon.Code
	}
	for _, item := range quote.Items {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Category:   item.Category,
			Price:      item.Price,
			Quantity:   item.Quantity,
			LineTotal:  item.LineTotal,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(userID)
	})
	if err != nil {
		return nil, err
	}

	s.scheduleTimeoutCancel(order)
	s.enqueueStatusEmail(order.ID, order.Status)
	return order, nil
}

// GetForUser 获取用户自己的订单
func (s *OrderService) GetForUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListForUser 获取用户订单列表
func (s *OrderService) ListForUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListAdmin 获取后台订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// GetByID 获取订单
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdateStatus 后台更新订单状态，非法迁移拒绝
func (s *OrderService) UpdateStatus(id uint, rawStatus string) (*models.Order, error) {
	status := NormalizeOrderStatus(rawStatus)
	if status == "" {
		return nil, ErrOrderStatusInvalid
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if !CanTransitionOrderStatus(order.Status, status) {
		return nil, ErrOrderStatusInvalid
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status
	s.enqueueStatusEmail(order.ID, status)
	return order, nil
}

// CancelByUser 用户取消订单，仅限未支付的待处理订单
func (s *OrderService) CancelByUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrNotFound
	}
	if order.Status != constants.OrderStatusPending || order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrOrderNotCancelable
	}

	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCanceled); err != nil {
		return nil, err
	}
	order.Status = constants.OrderStatusCanceled
	s.enqueueStatusEmail(order.ID, order.Status)
	return order, nil
}

// HandlePaymentPaid 支付成功后的订单状态推进
func (s *OrderService) HandlePaymentPaid(orderID uint, paidAt time.Time) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return nil
	}

	if err := s.orderRepo.UpdatePaymentStatus(order.ID, constants.PaymentStatusPaid, &paidAt); err != nil {
		return err
	}
	if order.Status == constants.OrderStatusPending {
		if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusConfirmed); err != nil {
			return err
		}
		s.enqueueStatusEmail(order.ID, constants.OrderStatusConfirmed)
	}
	return nil
}

// TimeoutCancel 支付超时取消，已支付或已流转的订单不动
func (s *OrderService) TimeoutCancel(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	if order.Status != constants.OrderStatusPending || order.PaymentStatus == constants.PaymentStatusPaid {
		return nil
	}

	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCanceled); err != nil {
		return err
	}
	if err := s.orderRepo.UpdatePaymentStatus(order.ID, constants.PaymentStatusExpired, nil); err != nil {
		return err
	}
	logger.Infow("order_timeout_canceled", "order_id", order.ID, "order_no", order.OrderNo)
	s.enqueueStatusEmail(order.ID, constants.OrderStatusCanceled)
	return nil
}

// NotifyStatusByEmail 发送订单状态邮件，由队列 worker 消费
func (s *OrderService) NotifyStatusByEmail(orderID uint, status string) error {
	if s.emailService == nil {
		return nil
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	return s.emailService.SendOrderStatusEmail(user.Email, OrderStatusEmailInput{
		OrderNo: order.OrderNo,
		Status:  status,
		Total:   order.Total,
	})
}

func (s *OrderService) scheduleTimeoutCancel(order *models.Order) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	minutes, err := s.settingService.GetOrderPaymentExpireMinutes(s.cfg.Order.PaymentExpireMinutes)
	if err != nil || minutes <= 0 {
		minutes = s.cfg.Order.PaymentExpireMinutes
	}
	if minutes <= 0 {
		minutes = 15
	}
	payload := queue.OrderTimeoutCancelPayload{OrderID: order.ID}
	if err := s.queueClient.EnqueueOrderTimeoutCancel(payload, time.Duration(minutes)*time.Minute); err != nil {
		logger.Warnw("order_timeout_enqueue_failed", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	payload := queue.OrderStatusEmailPayload{OrderID: orderID, Status: status}
	if err := s.queueClient.EnqueueOrderStatusEmail(payload); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "error", err)
	}
}

func generateOrderNo() string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("DLC%s%s", time.Now().Format("20060102150405"), strings.ToUpper(hex.EncodeToString(buf)))
}
