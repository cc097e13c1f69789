package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/repository"

	"github.com/shopspring/decimal"
)

var allowedSettingKeys = map[string]struct{}{
	constants.SettingKeySiteConfig:  {},
	constants.SettingKeyOrderConfig: {},
	constants.SettingKeyWechatPay:   {},
	constants.SettingKeySMTP:        {},
}

// SettingService 系统设置服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey 读取设置值，键不存在时返回 nil
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.Get(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 覆盖写入设置值，仅允许白名单键
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if _, ok := allowedSettingKeys[normalized]; !ok {
		return nil, ErrSettingKeyInvalid
	}
	setting := &models.Setting{Key: normalized, ValueJSON: models.JSON(value)}
	if err := s.repo.Upsert(setting); err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetSiteConfig 获取站点配置（合并默认值）
func (s *SettingService) GetSiteConfig(defaults map[string]interface{}) (map[string]interface{}, error) {
	data := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		data[k] = v
	}
	value, err := s.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	for k, v := range value {
		data[k] = v
	}
	return data, nil
}

// GetDeliveryFee 获取配送费，未配置或非法时返回兜底值
func (s *SettingService) GetDeliveryFee(fallback decimal.Decimal) (decimal.Decimal, error) {
	if s == nil {
		return fallback, nil
	}
	value, err := s.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil {
		return fallback, err
	}
	raw, ok := value[constants.SettingFieldDeliveryFee]
	if !ok {
		return fallback, nil
	}
	fee, err := parseSettingDecimal(raw)
	if err != nil || fee.IsNegative() {
		return fallback, nil
	}
	return fee, nil
}

// GetOrderPaymentExpireMinutes 获取订单支付超时分钟数
func (s *SettingService) GetOrderPaymentExpireMinutes(defaultValue int) (int, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil {
		return defaultValue, err
	}
	raw, ok := value[constants.SettingFieldPaymentExpireMinutes]
	if !ok {
		return defaultValue, nil
	}
	minutes, err := parseSettingInt(raw)
	if err != nil || minutes <= 0 {
		return defaultValue, nil
	}
	return minutes, nil
}

// GetWechatPayConfig 获取微信支付配置
func (s *SettingService) GetWechatPayConfig() (map[string]interface{}, error) {
	value, err := s.GetByKey(constants.SettingKeyWechatPay)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return map[string]interface{}(value), nil
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.Atoi(trimmed)
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}

func parseSettingDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero, fmt.Errorf("empty string")
		}
		return decimal.NewFromString(trimmed)
	default:
		return decimal.Zero, fmt.Errorf("unsupported value type")
	}
}
