package admin

import (
	"strconv"
	"strings"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/repository"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MenuItemRequest 菜品创建/更新请求
type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"is_available"`
}

// MenuAvailabilityRequest 上下架请求
type MenuAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

var menuWriteErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Menu item not found"},
	{target: service.ErrMenuItemInvalid, code: response.CodeBadRequest, msg: "Menu item definition is invalid"},
}

func (r MenuItemRequest) toServiceInput() service.MenuItemInput {
	return service.MenuItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		IsAvailable: r.IsAvailable,
	}
}

// GetAdminMenuItems 获取后台菜品列表
func (h *Handler) GetAdminMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.MenuItemListFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Keyword:  strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_available"); raw != "" {
		available := raw == "true" || raw == "1"
		filter.IsAvailable = &available
	}

	items, total, err := h.MenuService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load menu items", err)
		return
	}
	response.SuccessWithPage(c, items, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateMenuItem 创建菜品
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.MenuService.Create(req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, menuWriteErrorRules, response.CodeInternal, "Failed to create menu item")
		return
	}
	response.Success(c, item)
}

// UpdateMenuItem 更新菜品
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.MenuService.Update(itemID, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, menuWriteErrorRules, response.CodeInternal, "Failed to update menu item")
		return
	}
	response.Success(c, item)
}

// DeleteMenuItem 删除菜品
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.MenuService.Delete(itemID); err != nil {
		respondWithMappedError(c, err, menuWriteErrorRules, response.CodeInternal, "Failed to delete menu item")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetMenuItemAvailability 菜品上下架
func (h *Handler) SetMenuItemAvailability(c *gin.Context) {
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req MenuAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.MenuService.SetAvailability(itemID, *req.IsAvailable)
	if err != nil {
		respondWithMappedError(c, err, menuWriteErrorRules, response.CodeInternal, "Failed to update availability")
		return
	}
	response.Success(c, item)
}
