package admin

import (
	"strconv"
	"strings"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/repository"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	ImageURL  string `json:"image_url"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

var categoryWriteErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Category not found"},
	{target: service.ErrCategoryExists, code: response.CodeBadRequest, msg: "Category name already exists"},
	{target: service.ErrCategoryInUse, code: response.CodeBadRequest, msg: "Category is still used by menu items"},
	{target: service.ErrMenuItemInvalid, code: response.CodeBadRequest, msg: "Category definition is invalid"},
}

// GetAdminCategories 获取后台分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CategoryListFilter{
		Name:     strings.TrimSpace(c.Query("name")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	categories, total, err := h.CategoryService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load categories", err)
		return
	}
	response.SuccessWithPage(c, categories, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	category, err := h.CategoryService.Create(service.CategoryInput{
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "Failed to create category")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	category, err := h.CategoryService.Update(categoryID, service.CategoryInput{
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "Failed to update category")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(categoryID); err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "Failed to delete category")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
