package service

import "errors"

// 业务错误定义，由 handler 层映射为响应码
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password too weak")
	ErrUserDisabled       = errors.New("user disabled")
	ErrUserStatusInvalid  = errors.New("user status invalid")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrProfileEmpty       = errors.New("no profile fields to update")

	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponInvalid  = errors.New("coupon invalid")
	ErrCouponExists   = errors.New("coupon code already exists")

	ErrMenuItemInvalid     = errors.New("menu item invalid")
	ErrMenuItemUnavailable = errors.New("menu item unavailable")
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryInUse       = errors.New("category still referenced by menu items")
	ErrInvalidBanner       = errors.New("banner invalid")

	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrCartEmpty       = errors.New("cart is empty")

	ErrAddressRequired    = errors.New("delivery address required")
	ErrOrderStatusInvalid = errors.New("order status transition not allowed")
	ErrOrderNotCancelable = errors.New("order can not be canceled")
	ErrOrderNotPayable    = errors.New("order can not be paid")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentDisabled    = errors.New("payment provider not configured")

	ErrSettingKeyInvalid = errors.New("setting key not supported")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")

	ErrCaptchaDisabled = errors.New("captcha disabled")
	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	ErrPushDisabled        = errors.New("push gateway disabled")
	ErrNotificationInvalid = errors.New("notification invalid")
	ErrDeviceInvalid       = errors.New("device invalid")
)
