package admin

import (
	"strconv"
	"strings"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/repository"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// BannerRequest 轮播图创建/更新请求
type BannerRequest struct {
	Name      string `json:"name" binding:"required"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image" binding:"required"`
	LinkURL   string `json:"link_url"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
}

var bannerWriteErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Banner not found"},
	{target: service.ErrInvalidBanner, code: response.CodeBadRequest, msg: "Banner definition is invalid"},
}

func (r BannerRequest) toServiceInput() (service.BannerInput, error) {
	startAt, err := parseTimeNullable(r.StartAt)
	if err != nil {
		return service.BannerInput{}, err
	}
	endAt, err := parseTimeNullable(r.EndAt)
	if err != nil {
		return service.BannerInput{}, err
	}
	return service.BannerInput{
		Name:      r.Name,
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		Image:     r.Image,
		LinkURL:   r.LinkURL,
		SortOrder: r.SortOrder,
		IsActive:  r.IsActive,
		StartAt:   startAt,
		EndAt:     endAt,
	}, nil
}

// GetAdminBanners 获取后台轮播图列表
func (h *Handler) GetAdminBanners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.BannerListFilter{
		Name:     strings.TrimSpace(c.Query("name")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	banners, total, err := h.BannerService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load banners", err)
		return
	}
	response.SuccessWithPage(c, banners, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateBanner 创建轮播图
func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid date format", err)
		return
	}

	banner, err := h.BannerService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, bannerWriteErrorRules, response.CodeInternal, "Failed to create banner")
		return
	}
	response.Success(c, banner)
}

// UpdateBanner 更新轮播图
func (h *Handler) UpdateBanner(c *gin.Context) {
	bannerID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid date format", err)
		return
	}

	banner, err := h.BannerService.Update(bannerID, input)
	if err != nil {
		respondWithMappedError(c, err, bannerWriteErrorRules, response.CodeInternal, "Failed to update banner")
		return
	}
	response.Success(c, banner)
}

// DeleteBanner 删除轮播图
func (h *Handler) DeleteBanner(c *gin.Context) {
	bannerID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.BannerService.Delete(bannerID); err != nil {
		respondWithMappedError(c, err, bannerWriteErrorRules, response.CodeInternal, "Failed to delete banner")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
