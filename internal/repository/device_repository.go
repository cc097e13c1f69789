package repository

import (
	"errors"

	"github.com/delicute/delicute-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceRepository 推送设备数据访问接口
type DeviceRepository interface {
	GetByToken(token string) (*models.Device, error)
	Upsert(device *models.Device) error
	DeleteByToken(token string) error
	ListByUser(userID uint) ([]models.Device, error)
	ListAll() ([]models.Device, error)
	DeleteTokens(tokens []string) error
}

// GormDeviceRepository GORM 实现
type GormDeviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository 创建设备仓库
func NewDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

// GetByToken 根据令牌获取设备
func (r *GormDeviceRepository) GetByToken(token string) (*models.Device, error) {
	var device models.Device
	if err := r.db.Where("token = ?", token).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// Upsert 注册设备（令牌已存在则换绑到当前用户）
func (r *GormDeviceRepository) Upsert(device *models.Device) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "updated_at"}),
	}).Create(device).Error
}

// DeleteByToken 注销设备
func (r *GormDeviceRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.Device{}).Error
}

// ListByUser 获取用户全部设备
func (r *GormDeviceRepository) ListByUser(userID uint) ([]models.Device, error) {
	var devices []models.Device
	if err := r.db.Where("user_id = ?", userID).Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// ListAll 获取全部设备（全员推送用）
func (r *GormDeviceRepository) ListAll() ([]models.Device, error) {
	var devices []models.Device
	if err := r.db.Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// DeleteTokens 批量清理失效令牌
func (r *GormDeviceRepository) DeleteTokens(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.db.Where("token IN ?", tokens).Delete(&models.Device{}).Error
}
