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

// CouponRequest 优惠券创建/更新请求
type CouponRequest struct {
	Code        string  `json:"code" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	MinQty      int     `json:"min_qty"`
	Category    string  `json:"category"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	ImageURL    string  `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

var couponWriteErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeNotFound, msg: "Coupon not found"},
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "Coupon definition is invalid"},
	{target: service.ErrCouponExists, code: response.CodeBadRequest, msg: "Coupon code already exists"},
}

func (r CouponRequest) toServiceInput() (service.CouponInput, error) {
	startDate, err := parseTimeNullable(r.StartDate)
	if err != nil {
		return service.CouponInput{}, err
	}
	endDate, err := parseTimeNullable(r.EndDate)
	if err != nil {
		return service.CouponInput{}, err
	}
	return service.CouponInput{
		Code:        r.Code,
		Type:        r.Type,
		Description: r.Description,
		Value:       models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Value)),
		MinQty:      r.MinQty,
		Category:    r.Category,
		StartDate:   startDate,
		EndDate:     endDate,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
	}, nil
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "Invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid date format", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, couponWriteErrorRules, response.CodeInternal, "Failed to create coupon")
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid date format", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(couponID, input)
	if err != nil {
		respondWithMappedError(c, err, couponWriteErrorRules, response.CodeInternal, "Failed to update coupon")
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CouponAdminService.Delete(couponID); err != nil {
		respondWithMappedError(c, err, couponWriteErrorRules, response.CodeInternal, "Failed to delete coupon")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminCoupon 获取单个优惠券
func (h *Handler) GetAdminCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.GetByID(couponID)
	if err != nil {
		respondWithMappedError(c, err, couponWriteErrorRules, response.CodeInternal, "Failed to load coupon")
		return
	}
	response.Success(c, coupon)
}

// GetAdminCoupons 获取优惠券列表
func (h *Handler) GetAdminCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Code:     strings.TrimSpace(c.Query("code")),
		Type:     strings.TrimSpace(c.Query("type")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load coupons", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
