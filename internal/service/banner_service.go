package service

import (
	"strings"
	"time"

	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/repository"
)

// BannerService 首页轮播图服务
type BannerService struct {
	repo repository.BannerRepository
}

// NewBannerService 创建轮播图服务
func NewBannerService(repo repository.BannerRepository) *BannerService {
	return &BannerService{repo: repo}
}

// BannerInput 创建/更新轮播图输入
type BannerInput struct {
	Name      string
	Title     string
	Subtitle  string
	Image     string
	LinkURL   string
	SortOrder int
	IsActive  *bool
	StartAt   *time.Time
	EndAt     *time.Time
}

// ListPublic 获取当前可见的轮播图
func (s *BannerService) ListPublic() ([]models.Banner, error) {
	return s.repo.ListVisible(time.Now())
}

// ListAdmin 获取后台轮播图列表
func (s *BannerService) ListAdmin(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	return s.repo.List(filter)
}

// GetByID 获取轮播图
func (s *BannerService) GetByID(id uint) (*models.Banner, error) {
	banner, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrNotFound
	}
	return banner, nil
}

// Create 创建轮播图
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	banner, err := buildBannerEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Update 更新轮播图
func (s *BannerService) Update(id uint, input BannerInput) (*models.Banner, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	banner, err := buildBannerEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete 删除轮播图
func (s *BannerService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func buildBannerEntity(input BannerInput, existing *models.Banner) (*models.Banner, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidBanner
	}
	image := strings.TrimSpace(input.Image)
	if image == "" {
		return nil, ErrInvalidBanner
	}
	if input.StartAt != nil && input.EndAt != nil && input.EndAt.Before(*input.StartAt) {
		return nil, ErrInvalidBanner
	}

	if existing == nil {
		banner := &models.Banner{
			Name:      name,
			Title:     strings.TrimSpace(input.Title),
			Subtitle:  strings.TrimSpace(input.Subtitle),
			Image:     image,
			LinkURL:   strings.TrimSpace(input.LinkURL),
			SortOrder: input.SortOrder,
			IsActive:  true,
			StartAt:   input.StartAt,
			EndAt:     input.EndAt,
		}
		if input.IsActive != nil {
			banner.IsActive = *input.IsActive
		}
		return banner, nil
	}

	existing.Name = name
	existing.Title = strings.TrimSpace(input.Title)
	existing.Subtitle = strings.TrimSpace(input.Subtitle)
	existing.Image = image
	existing.LinkURL = strings.TrimSpace(input.LinkURL)
	existing.SortOrder = input.SortOrder
	existing.StartAt = input.StartAt
	existing.EndAt = input.EndAt
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	return existing, nil
}
