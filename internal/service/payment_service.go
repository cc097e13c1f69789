package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/logger"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/payment/wechatpay"
	"github.com/delicute/delicute-api/internal/repository"
)

// PaymentService 支付业务服务
// 当前仅支持微信支付 Native 扫码。
type PaymentService struct {
	paymentRepo    repository.PaymentRepository
	orderRepo      repository.OrderRepository
	settingService *SettingService
	orderService   *OrderService
}

// NewPaymentService 创建支付服务
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	settingService *SettingService,
	orderService *OrderService,
) *PaymentService {
	return &PaymentService{
		paymentRepo:    paymentRepo,
		orderRepo:      orderRepo,
		settingService: settingService,
		orderService:   orderService,
	}
}

// CreateWechatPayment 为订单创建微信扫码支付
func (s *PaymentService) CreateWechatPayment(ctx context.Context, userID, orderID uint, clientIP string) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrNotFound
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrOrderNotPayable
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotPayable
	}

	cfg, err := s.loadWechatConfig()
	if err != nil {
		return nil, err
	}

	// 同一订单已有未过期的扫码单时直接复用
	latest, err := s.paymentRepo.GetLatestByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Status == constants.PaymentStatusPending && latest.CodeURL != "" {
		return latest, nil
	}

	payment := &models.Payment{
		PaymentNo: generatePaymentNo(),
		OrderID:   order.ID,
		Provider:  constants.PaymentProviderWechat,
		Amount:    order.Total,
		Currency:  "CNY",
		Status:    constants.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	result, err := wechatpay.CreateNativePayment(ctx, cfg, wechatpay.CreateInput{
		OrderNo:     payment.PaymentNo,
		PaymentID:   payment.ID,
		Amount:      order.Total.String(),
		Description: fmt.Sprintf("外卖订单 %s", order.OrderNo),
		ClientIP:    clientIP,
	})
	if err != nil {
		payment.Status = constants.PaymentStatusFailed
		_ = s.paymentRepo.Update(payment)
		return nil, err
	}

	payment.CodeURL = result.CodeURL
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if order.PaymentStatus == constants.PaymentStatusUnpaid {
		if err := s.orderRepo.UpdatePaymentStatus(order.ID, constants.PaymentStatusPending, nil); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

// HandleWechatCallback 处理微信支付回调
// 验签失败返回错误；重复通知幂等处理。
func (s *PaymentService) HandleWechatCallback(ctx context.Context, headers map[string]string, body []byte) error {
	cfg, err := s.loadWechatConfig()
	if err != nil {
		return err
	}

	result, err := wechatpay.VerifyAndDecodeWebhook(ctx, cfg, headers, body)
	if err != nil {
		return err
	}

	paymentID, ok := wechatpay.ParsePaymentIDFromAttach(result.Attach)
	if !ok {
		logger.Warnw("wechat_callback_attach_invalid", "attach", result.Attach)
		return ErrPaymentNotFound
	}
	return s.applyPaymentState(paymentID, result.Status, result.TransactionID, result.PaidAt)
}

// SyncWechatPayment 主动向微信查询并同步支付状态
func (s *PaymentService) SyncWechatPayment(ctx context.Context, paymentNo string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByPaymentNo(strings.TrimSpace(paymentNo))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusPaid {
		return payment, nil
	}

	cfg, err := s.loadWechatConfig()
	if err != nil {
		return nil, err
	}
	result, err := wechatpay.QueryOrderByOutTradeNo(ctx, cfg, payment.PaymentNo)
	if err != nil {
		return nil, err
	}
	if err := s.applyPaymentState(payment.ID, result.Status, result.TransactionID, result.PaidAt); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByID(payment.ID)
}

// GetByOrderForUser 获取用户订单的最近一笔支付
func (s *PaymentService) GetByOrderForUser(userID, orderID uint) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrNotFound
	}
	payment, err := s.paymentRepo.GetLatestByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PaymentService) applyPaymentState(paymentID uint, status, transactionID string, paidAt *time.Time) error {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusPaid {
		return nil
	}

	switch status {
	case constants.PaymentStatusPaid:
		when := time.Now()
		if paidAt != nil {
			when = *paidAt
		}
		if err := s.paymentRepo.MarkPaid(payment.ID, transactionID, when); err != nil {
			return err
		}
		return s.orderService.HandlePaymentPaid(payment.OrderID, when)
	case constants.PaymentStatusFailed:
		payment.Status = constants.PaymentStatusFailed
		payment.TransactionID = transactionID
		return s.paymentRepo.Update(payment)
	default:
		return nil
	}
}

func (s *PaymentService) loadWechatConfig() (*wechatpay.Config, error) {
	raw, err := s.settingService.GetWechatPayConfig()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrPaymentDisabled
	}
	cfg, err := wechatpay.ParseConfig(raw)
	if err != nil {
		return nil, ErrPaymentDisabled
	}
	if err := wechatpay.ValidateConfig(cfg); err != nil {
		return nil, ErrPaymentDisabled
	}
	return cfg, nil
}

func generatePaymentNo() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("PAY%s%s", time.Now().Format("20060102150405"), strings.ToUpper(hex.EncodeToString(buf)))
}
