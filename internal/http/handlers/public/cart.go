package public

import (
	"errors"
	"strconv"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

// GetCart 获取购物车报价
// 可选 coupon 查询参数：合格则计入折扣，不合格时报价照常返回。
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	quote, err := h.PricingService.QuoteCart(uid, c.Query("coupon"))
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load cart", err)
		return
	}
	response.Success(c, quote)
}

// UpsertCartItem 添加/更新购物车项
// 数量小于等于 0 视为删除该行。
func (h *Handler) UpsertCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if req.Quantity <= 0 {
		if err := h.CartService.RemoveItem(uid, req.MenuItemID); err != nil && !errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeInternal, "Failed to update cart", err)
			return
		}
		response.Success(c, gin.H{"removed": true})
		return
	}

	item, err := h.CartService.UpsertItem(uid, req.MenuItemID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to update cart")
		return
	}
	response.Success(c, item)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	menuItemID, err := strconv.ParseUint(c.Param("menu_item_id"), 10, 64)
	if err != nil || menuItemID == 0 {
		respondError(c, response.CodeBadRequest, "Invalid menu item id", nil)
		return
	}

	if err := h.CartService.RemoveItem(uid, uint(menuItemID)); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to update cart")
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "Failed to clear cart", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
