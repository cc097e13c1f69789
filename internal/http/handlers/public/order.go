package public

import (
	"strconv"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	Address    string `json:"address" binding:"required"`
	Phone      string `json:"phone"`
	Note       string `json:"note"`
	CouponCode string `json:"coupon_code"`
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "Invalid order id", nil)
		return 0, false
	}
	return uint(id), true
}

// CreateOrder 从购物车下单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	order, err := h.OrderService.Checkout(uid, service.CheckoutInput{
		Address:    req.Address,
		Phone:      req.Phone,
		Note:       req.Note,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "Failed to create order")
		return
	}
	response.Success(c, order)
}

// GetUserOrders 获取当前用户订单列表
func (h *Handler) GetUserOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListForUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load orders", err)
		return
	}
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetUserOrder 获取当前用户的单个订单
func (h *Handler) GetUserOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetForUser(uid, orderID)
	if err != nil {
		respondWithMappedError(c, err, userOrderErrorRules, response.CodeInternal, "Failed to load order")
		return
	}
	response.Success(c, order)
}

// CancelUserOrder 取消待处理订单
func (h *Handler) CancelUserOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.CancelByUser(uid, orderID)
	if err != nil {
		respondWithMappedError(c, err, userOrderErrorRules, response.CodeInternal, "Failed to cancel order")
		return
	}
	response.Success(c, order)
}
