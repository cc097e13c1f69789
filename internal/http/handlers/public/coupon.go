package public

import (
	"errors"
	"strings"
	"time"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/pricing"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ValidateCouponItemRequest 券校验请求里的购物车行
// 兼容 qty 与 quantity 两种字段名，二者同时给出时以 qty 为准。
type ValidateCouponItemRequest struct {
	Category string `json:"category"`
	Qty      *int   `json:"qty"`
	Quantity *int   `json:"quantity"`
}

// ValidateCouponRequest 券校验请求
type ValidateCouponRequest struct {
	Code      string                      `json:"code"`
	CartItems []ValidateCouponItemRequest `json:"cartItems"`
}

func (r ValidateCouponItemRequest) quantity() int {
	if r.Qty != nil {
		return *r.Qty
	}
	if r.Quantity != nil {
		return *r.Quantity
	}
	return 0
}

// GetActiveCoupons 获取当前可领用的优惠券列表
func (h *Handler) GetActiveCoupons(c *gin.Context) {
	coupons, err := h.CouponRepo.ListActive(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load coupons", err)
		return
	}
	response.Success(c, gin.H{"coupons": coupons})
}

// ValidateCoupon 校验优惠码对给定购物车快照的资格
// 不合格不是错误：返回 200 与 {valid:false, message}。
func (h *Handler) ValidateCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		respondError(c, response.CodeBadRequest, "Coupon code is required", nil)
		return
	}

	items := make([]service.ValidateItemInput, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, service.ValidateItemInput{
			Category: item.Category,
			Quantity: item.quantity(),
		})
	}

	check, err := h.PricingService.ValidateCoupon(uid, req.Code, items)
	if err != nil {
		if errors.Is(err, service.ErrCouponInvalid) {
			respondError(c, response.CodeBadRequest, "Coupon code is required", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to validate coupon", err)
		return
	}
	if !check.Valid {
		response.Success(c, gin.H{"valid": false, "message": check.Message})
		return
	}

	coupon, err := h.CouponRepo.GetActiveByCode(pricing.NormalizeCode(req.Code))
	if err != nil || coupon == nil {
		respondError(c, response.CodeInternal, "Failed to validate coupon", err)
		return
	}
	response.Success(c, validCouponView(coupon))
}

func validCouponView(coupon *models.Coupon) gin.H {
	return gin.H{
		"valid":       true,
		"id":          coupon.ID,
		"code":        coupon.Code,
		"description": coupon.Description,
		"type":        coupon.Type,
		"value":       coupon.Value,
		"min_qty":     coupon.MinQty,
		"category":    coupon.Category,
		"start_date":  coupon.StartDate,
		"end_date":    coupon.EndDate,
		"image_url":   coupon.ImageURL,
	}
}
