package service

import (
	"strings"

	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/pricing"
	"github.com/delicute/delicute-api/internal/repository"

	"github.com/shopspring/decimal"
)

// MenuService 菜单业务服务
type MenuService struct {
	repo repository.MenuItemRepository
}

// NewMenuService 创建菜单服务
func NewMenuService(repo repository.MenuItemRepository) *MenuService {
	return &MenuService{repo: repo}
}

// MenuItemInput 创建/更新菜品输入
type MenuItemInput struct {
	Name        string
	Description string
	Price       models.Money
	ImageURL    string
	Category    string
	IsAvailable *bool
}

// ListPublic 获取对外菜单，仅含可售菜品
func (s *MenuService) ListPublic(category, keyword string, page, pageSize int) ([]models.MenuItem, int64, error) {
	available := true
	filter := repository.MenuItemListFilter{
		Category:    normalizeMenuCategory(category),
		Keyword:     strings.TrimSpace(keyword),
		IsAvailable: &available,
		Page:        page,
		PageSize:    pageSize,
	}
	return s.repo.List(filter)
}

// ListAdmin 获取后台菜品列表
func (s *MenuService) ListAdmin(filter repository.MenuItemListFilter) ([]models.MenuItem, int64, error) {
	filter.Category = normalizeMenuCategory(filter.Category)
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	return s.repo.List(filter)
}

// GetByID 获取菜品
func (s *MenuService) GetByID(id uint) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Create 创建菜品
func (s *MenuService) Create(input MenuItemInput) (*models.MenuItem, error) {
	item, err := buildMenuItemEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update 更新菜品
func (s *MenuService) Update(id uint, input MenuItemInput) (*models.MenuItem, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	item, err := buildMenuItemEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 删除菜品
func (s *MenuService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// SetAvailability 上下架菜品
func (s *MenuService) SetAvailability(id uint, available bool) (*models.MenuItem, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	existing.IsAvailable = available
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func buildMenuItemEntity(input MenuItemInput, existing *models.MenuItem) (*models.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMenuItemInvalid
	}
	if input.Price.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrMenuItemInvalid
	}
	category := normalizeMenuCategory(input.Category)

	if existing == nil {
		item := &models.MenuItem{
			Name:        name,
			Description: strings.TrimSpace(input.Description),
			Price:       input.Price,
			ImageURL:    strings.TrimSpace(input.ImageURL),
			Category:    category,
			IsAvailable: true,
		}
		if input.IsAvailable != nil {
			item.IsAvailable = *input.IsAvailable
		}
		return item, nil
	}

	existing.Name = name
	existing.Description = strings.TrimSpace(input.Description)
	existing.Price = input.Price
	existing.ImageURL = strings.TrimSpace(input.ImageURL)
	existing.Category = category
	if input.IsAvailable != nil {
		existing.IsAvailable = *input.IsAvailable
	}
	return existing, nil
}

// normalizeMenuCategory 分类入库即小写，空白分类留空由计价侧归入 misc 桶
func normalizeMenuCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return pricing.NormalizeCategory(trimmed)
}
