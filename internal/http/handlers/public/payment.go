package public

import (
	"io"
	"net/http"

	"github.com/delicute/delicute-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// wechatNotifyHeaders 微信回调验签所需请求头
var wechatNotifyHeaders = []string{
	"Wechatpay-Timestamp",
	"Wechatpay-Nonce",
	"Wechatpay-Signature",
	"Wechatpay-Serial",
}

// CreateOrderPayment 为订单创建微信扫码支付
func (h *Handler) CreateOrderPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	payment, err := h.PaymentService.CreateWechatPayment(c.Request.Context(), uid, orderID, c.ClientIP())
	if err != nil {
		respondWithMappedError(c, err, paymentCreateErrorRules, response.CodeInternal, "Failed to create payment")
		return
	}
	response.Success(c, payment)
}

// GetOrderPayment 获取订单最近一笔支付
func (h *Handler) GetOrderPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	payment, err := h.PaymentService.GetByOrderForUser(uid, orderID)
	if err != nil {
		respondWithMappedError(c, err, paymentQueryErrorRules, response.CodeInternal, "Failed to load payment")
		return
	}
	response.Success(c, payment)
}

// SyncOrderPayment 主动同步支付状态（扫码后轮询用）
func (h *Handler) SyncOrderPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	payment, err := h.PaymentService.GetByOrderForUser(uid, orderID)
	if err != nil {
		respondWithMappedError(c, err, paymentQueryErrorRules, response.CodeInternal, "Failed to load payment")
		return
	}

	synced, err := h.PaymentService.SyncWechatPayment(c.Request.Context(), payment.PaymentNo)
	if err != nil {
		respondWithMappedError(c, err, paymentQueryErrorRules, response.CodeInternal, "Failed to sync payment")
		return
	}
	response.Success(c, synced)
}

// WechatPayCallback 微信支付异步回调
// 微信要求固定格式应答，这里不走统一响应封装。
func (h *Handler) WechatPayCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "FAIL", "message": "read body failed"})
		return
	}

	headers := make(map[string]string, len(wechatNotifyHeaders))
	for _, name := range wechatNotifyHeaders {
		headers[name] = c.GetHeader(name)
	}

	if err := h.PaymentService.HandleWechatCallback(c.Request.Context(), headers, body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "FAIL", "message": "callback rejected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": "SUCCESS", "message": "ok"})
}
