package service

import (
	"strings"
	"time"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/pricing"
	"github.com/delicute/delicute-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService 优惠券管理服务
type CouponAdminService struct {
	repo repository.CouponRepository
}

// NewCouponAdminService 创建优惠券管理服务
func NewCouponAdminService(repo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{repo: repo}
}

// CouponInput 创建/更新优惠券输入
type CouponInput struct {
	Code        string
	Type        string
	Description string
	Value       models.Money
	MinQty      int
	Category    string
	StartDate   *time.Time
	EndDate     *time.Time
	ImageURL    string
	IsActive    *bool
}

// Create 创建优惠券，码与类型写入时即规范化
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	coupon, err := buildCouponEntity(input, nil)
	if err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(coupon.Code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCouponExists
	}

	if err := s.repo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	if id == 0 {
		return nil, ErrCouponInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCouponNotFound
	}

	originalCode := existing.Code
	coupon, err := buildCouponEntity(input, existing)
	if err != nil {
		return nil, err
	}

	if coupon.Code != originalCode {
		dup, err := s.repo.GetByCode(coupon.Code)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id {
			return nil, ErrCouponExists
		}
	}

	if err := s.repo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券
func (s *CouponAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrCouponInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	return s.repo.Delete(id)
}

// GetByID 获取优惠券
func (s *CouponAdminService) GetByID(id uint) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// List 获取优惠券列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	filter.Code = pricing.NormalizeCode(filter.Code)
	filter.Type = pricing.NormalizeType(filter.Type)
	return s.repo.List(filter)
}

func buildCouponEntity(input CouponInput, existing *models.Coupon) (*models.Coupon, error) {
	code := pricing.NormalizeCode(input.Code)
	if code == "" {
		return nil, ErrCouponInvalid
	}

	couponType := pricing.NormalizeType(input.Type)
	switch couponType {
	case constants.CouponTypePercent:
		if input.Value.Decimal.LessThanOrEqual(decimal.Zero) || input.Value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return nil, ErrCouponInvalid
		}
	case constants.CouponTypeBuyX:
		if input.Value.Decimal.LessThanOrEqual(decimal.Zero) || input.MinQty <= 0 {
			return nil, ErrCouponInvalid
		}
	case constants.CouponTypeFirstOrder, constants.CouponTypeDateRange:
		if input.Value.Decimal.LessThanOrEqual(decimal.Zero) {
			return nil, ErrCouponInvalid
		}
	default:
		return nil, ErrCouponInvalid
	}

	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, ErrCouponInvalid
	}

	category := strings.TrimSpace(input.Category)
	if category != "" {
		category = pricing.NormalizeCategory(category)
	}

	if existing == nil {
		coupon := &models.Coupon{
			Code:        code,
			Type:        couponType,
			Description: strings.TrimSpace(input.Description),
			Value:       input.Value,
			MinQty:      input.MinQty,
			Category:    category,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
			ImageURL:    strings.TrimSpace(input.ImageURL),
			IsActive:    true,
		}
		if input.IsActive != nil {
			coupon.IsActive = *input.IsActive
		}
		return coupon, nil
	}

	existing.Code = code
	existing.Type = couponType
	existing.Description = strings.TrimSpace(input.Description)
	existing.Value = input.Value
	existing.MinQty = input.MinQty
	existing.Category = category
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	return existing, nil
}
