package service

import (
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/repository"
)

// CartService 购物车业务服务
type CartService struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, menuRepo repository.MenuItemRepository) *CartService {
	return &CartService{cartRepo: cartRepo, menuRepo: menuRepo}
}

// UpsertItem 写入购物车行，同一菜品重复写入时数量为最后写入者生效
func (s *CartService) UpsertItem(userID, menuItemID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	menuItem, err := s.menuRepo.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if menuItem == nil {
		return nil, ErrNotFound
	}
	if !menuItem.IsAvailable {
		return nil, ErrMenuItemUnavailable
	}

	existing, err := s.cartRepo.GetByUserAndItem(userID, menuItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity = quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		existing.MenuItem = menuItem
		return existing, nil
	}

	item := &models.CartItem{
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	item.MenuItem = menuItem
	return item, nil
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(userID, menuItemID uint) error {
	existing, err := s.cartRepo.GetByUserAndItem(userID, menuItemID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.cartRepo.Delete(userID, menuItemID)
}

// ListByUser 获取购物车内容，下架或已删除的菜品行不返回
func (s *CartService) ListByUser(userID uint) ([]models.CartItem, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	visible := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.MenuItem == nil || !item.MenuItem.IsAvailable {
			continue
		}
		visible = append(visible, item)
	}
	return visible, nil
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}
