package service

import (
	"context"
	"strings"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/logger"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/push"
	"github.com/delicute/delicute-api/internal/queue"
	"github.com/delicute/delicute-api/internal/repository"
)

// NotificationService 推送通知服务
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	deviceRepo       repository.DeviceRepository
	userRepo         repository.UserRepository
	pushClient       *push.Client
	queueClient      *queue.Client
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	deviceRepo repository.DeviceRepository,
	userRepo repository.UserRepository,
	pushClient *push.Client,
	queueClient *queue.Client,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		deviceRepo:       deviceRepo,
		userRepo:         userRepo,
		pushClient:       pushClient,
		queueClient:      queueClient,
	}
}

// RegisterDevice 注册/刷新推送设备，令牌换绑用户时覆盖
func (s *NotificationService) RegisterDevice(userID uint, platform, token string) (*models.Device, error) {
	normalizedToken := strings.TrimSpace(token)
	if userID == 0 || normalizedToken == "" {
		return nil, ErrDeviceInvalid
	}
	normalizedPlatform := strings.ToLower(strings.TrimSpace(platform))
	switch normalizedPlatform {
	case constants.DevicePlatformAndroid, constants.DevicePlatformIOS, constants.DevicePlatformWeb:
	default:
		return nil, ErrDeviceInvalid
	}

	device := &models.Device{
		UserID:   userID,
		Platform: normalizedPlatform,
		Token:    normalizedToken,
	}
	if err := s.deviceRepo.Upsert(device); err != nil {
		return nil, err
	}
	return s.deviceRepo.GetByToken(normalizedToken)
}

// UnregisterDevice 注销推送设备，仅限持有者
func (s *NotificationService) UnregisterDevice(userID uint, token string) error {
	normalizedToken := strings.TrimSpace(token)
	if normalizedToken == "" {
		return ErrDeviceInvalid
	}
	device, err := s.deviceRepo.GetByToken(normalizedToken)
	if err != nil {
		return err
	}
	if device == nil || device.UserID != userID {
		return ErrNotFound
	}
	return s.deviceRepo.DeleteByToken(normalizedToken)
}

// NotificationInput 创建通知输入
type NotificationInput struct {
	Title    string
	Body     string
	ImageURL string
	Audience string
	UserID   uint
}

// Create 创建通知并投递到发送队列
// 队列不可用时同步发送。
func (s *NotificationService) Create(input NotificationInput) (*models.Notification, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrNotificationInvalid
	}
	audience := strings.ToLower(strings.TrimSpace(input.Audience))
	switch audience {
	case constants.NotificationAudienceAll:
	case constants.NotificationAudienceUser:
		if input.UserID == 0 {
			return nil, ErrNotificationInvalid
		}
		user, err := s.userRepo.GetByID(input.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrNotFound
		}
	default:
		return nil, ErrNotificationInvalid
	}

	notification := &models.Notification{
		Title:    title,
		Body:     strings.TrimSpace(input.Body),
		ImageURL: strings.TrimSpace(input.ImageURL),
		Audience: audience,
		UserID:   input.UserID,
		Status:   constants.NotificationStatusPending,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	if s.queueClient != nil && s.queueClient.Enabled() {
		payload := queue.NotificationDispatchPayload{NotificationID: notification.ID}
		if err := s.queueClient.EnqueueNotificationDispatch(payload); err != nil {
			logger.Warnw("notification_enqueue_failed", "notification_id", notification.ID, "error", err)
			return notification, s.Dispatch(context.Background(), notification.ID)
		}
		return notification, nil
	}
	return notification, s.Dispatch(context.Background(), notification.ID)
}

// Dispatch 按受众解析设备令牌并推送，由队列 worker 消费
func (s *NotificationService) Dispatch(ctx context.Context, notificationID uint) error {
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return nil
	}

	if s.pushClient == nil || !s.pushClient.Enabled() {
		return s.notificationRepo.UpdateDispatchResult(notification.ID, constants.NotificationStatusFailed, 0, 0)
	}

	var devices []models.Device
	if notification.Audience == constants.NotificationAudienceUser {
		devices, err = s.deviceRepo.ListByUser(notification.UserID)
	} else {
		devices, err = s.deviceRepo.ListAll()
	}
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return s.notificationRepo.UpdateDispatchResult(notification.ID, constants.NotificationStatusSent, 0, 0)
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.Token)
	}

	result, err := s.pushClient.Send(ctx, tokens, push.Message{
		Title:    notification.Title,
		Body:     notification.Body,
		ImageURL: notification.ImageURL,
	})
	if err != nil {
		logger.Errorw("notification_push_failed", "notification_id", notification.ID, "error", err)
		return s.notificationRepo.UpdateDispatchResult(notification.ID, constants.NotificationStatusFailed, 0, len(tokens))
	}

	// 网关标记的失效令牌直接清理
	if len(result.InvalidTokens) > 0 {
		if err := s.deviceRepo.DeleteTokens(result.InvalidTokens); err != nil {
			logger.Warnw("notification_token_cleanup_failed", "notification_id", notification.ID, "error", err)
		}
	}

	status := constants.NotificationStatusSent
	if result.SentCount == 0 && result.FailCount > 0 {
		status = constants.NotificationStatusFailed
	}
	return s.notificationRepo.UpdateDispatchResult(notification.ID, status, result.SentCount, result.FailCount)
}

// List 获取通知列表
func (s *NotificationService) List(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	return s.notificationRepo.List(filter)
}

// GetByID 获取通知
func (s *NotificationService) GetByID(id uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotFound
	}
	return notification, nil
}

// ListDevices 获取用户设备列表
func (s *NotificationService) ListDevices(userID uint) ([]models.Device, error) {
	return s.deviceRepo.ListByUser(userID)
}
