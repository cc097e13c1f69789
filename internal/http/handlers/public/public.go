package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/delicute/delicute-api/internal/cache"
	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取全局配置（公开安全子集）
func (h *Handler) GetConfig(c *gin.Context) {
	defaults := map[string]interface{}{
		"name":     "Delicute",
		"currency": "USD",
		"contact":  map[string]interface{}{},
	}

	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.SettingService.GetSiteConfig(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load configuration", err)
		return
	}
	if h.CaptchaService != nil {
		data["captcha_enabled"] = h.CaptchaService.Enabled()
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetMenu 获取菜单列表
func (h *Handler) GetMenu(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	items, total, err := h.MenuService.ListPublic(category, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load menu", err)
		return
	}

	response.SuccessWithPage(c, items, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetMenuItem 获取单个菜品
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "Invalid menu item id", nil)
		return
	}

	item, svcErr := h.MenuService.GetByID(uint(id))
	if svcErr != nil {
		respondWithMappedError(c, svcErr, []mappedHandlerError{
			{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Menu item not found"},
		}, response.CodeInternal, "Failed to load menu item")
		return
	}
	response.Success(c, item)
}

// GetCategories 获取启用中的分类
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListPublic()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load categories", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// GetBanners 获取展示中的轮播图
func (h *Handler) GetBanners(c *gin.Context) {
	banners, err := h.BannerService.ListPublic()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load banners", err)
		return
	}
	response.Success(c, gin.H{"banners": banners})
}

// GetCaptcha 获取图片验证码挑战
func (h *Handler) GetCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to generate captcha", err)
		return
	}
	response.Success(c, challenge)
}
