package public

import (
	"errors"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "Quantity must be at least 1"},
	{target: service.ErrMenuItemUnavailable, code: response.CodeBadRequest, msg: "Menu item is not available"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Menu item not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrAddressRequired, code: response.CodeBadRequest, msg: "Delivery address is required"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "Cart is empty"},
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "Coupon is not valid for this order"},
}

var userOrderErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Order not found"},
	{target: service.ErrOrderNotCancelable, code: response.CodeBadRequest, msg: "Order can no longer be canceled"},
}

var paymentCreateErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Order not found"},
	{target: service.ErrOrderNotPayable, code: response.CodeBadRequest, msg: "Order can not be paid"},
	{target: service.ErrPaymentDisabled, code: response.CodeBadRequest, msg: "Payment is not configured"},
}

var paymentQueryErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Order not found"},
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "Payment not found"},
}

var deviceErrorRules = []mappedHandlerError{
	{target: service.ErrDeviceInvalid, code: response.CodeBadRequest, msg: "Device token is invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Device not found"},
}
