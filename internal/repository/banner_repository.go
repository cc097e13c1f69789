package repository

import (
	"errors"
	"time"

	"github.com/delicute/delicute-api/internal/models"

	"gorm.io/gorm"
)

// BannerRepository 轮播图数据访问接口
type BannerRepository interface {
	GetByID(id uint) (*models.Banner, error)
	Create(banner *models.Banner) error
	Update(banner *models.Banner) error
	Delete(id uint) error
	List(filter BannerListFilter) ([]models.Banner, int64, error)
	ListVisible(now time.Time) ([]models.Banner, error)
}

// BannerListFilter 轮播图列表筛选
type BannerListFilter struct {
	Name     string
	IsActive *bool
	Page     int
	PageSize int
}

// GormBannerRepository GORM 实现
type GormBannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建轮播图仓库
func NewBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// GetByID 根据ID获取轮播图
func (r *GormBannerRepository) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// Create 创建轮播图
func (r *GormBannerRepository) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

// Update 更新轮播图
func (r *GormBannerRepository) Update(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

// Delete 删除轮播图
func (r *GormBannerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}

// List 获取轮播图列表
func (r *GormBannerRepository) List(filter BannerListFilter) ([]models.Banner, int64, error) {
	var banners []models.Banner
	query := r.db.Model(&models.Banner{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order asc, id desc").Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// ListVisible 获取当前可见的轮播图（启用且在投放窗口内）
func (r *GormBannerRepository) ListVisible(now time.Time) ([]models.Banner, error) {
	var banners []models.Banner
	if err := r.db.Where("is_active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now).
		Order("sort_order asc, id desc").
		Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}
