package service

import (
	"strings"

	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/pricing"
	"github.com/delicute/delicute-api/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo     repository.CategoryRepository
	menuRepo repository.MenuItemRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, menuRepo repository.MenuItemRepository) *CategoryService {
	return &CategoryService{repo: repo, menuRepo: menuRepo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name      string
	ImageURL  string
	SortOrder int
	IsActive  *bool
}

// ListPublic 获取启用中的分类
func (s *CategoryService) ListPublic() ([]models.Category, error) {
	return s.repo.ListActive()
}

// ListAdmin 获取后台分类列表
func (s *CategoryService) ListAdmin(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.repo.List(filter)
}

// Create 创建分类，名称统一小写且唯一
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := normalizeCategoryName(input.Name)
	if name == "" {
		return nil, ErrNotFound
	}
	exist, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCategoryExists
	}

	category := &models.Category{
		Name:      name,
		ImageURL:  strings.TrimSpace(input.ImageURL),
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	name := normalizeCategoryName(input.Name)
	if name == "" {
		return nil, ErrNotFound
	}
	if name != category.Name {
		exist, err := s.repo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != id {
			return nil, ErrCategoryExists
		}
	}

	category.Name = name
	category.ImageURL = strings.TrimSpace(input.ImageURL)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，仍被菜品引用时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	_, total, err := s.menuRepo.List(repository.MenuItemListFilter{
		Category: category.Name,
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Delete(id)
}

func normalizeCategoryName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return pricing.NormalizeCategory(trimmed)
}
