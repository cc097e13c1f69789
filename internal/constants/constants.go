package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// 支付状态常量
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

// 支付提供方常量
const (
	PaymentProviderWechat = "wechatpay"
)

// 优惠券类型常量（规范化后统一存大写）
const (
	CouponTypePercent    = "PERCENT"
	CouponTypeBuyX       = "BUY_X"
	CouponTypeFirstOrder = "FIRST_ORDER"
	CouponTypeDateRange  = "DATE_RANGE"
)

// MiscCategory 无分类菜品归入的兜底分类标签
const MiscCategory = "misc"

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 设备平台常量
const (
	DevicePlatformAndroid = "android"
	DevicePlatformIOS     = "ios"
	DevicePlatformWeb     = "web"
)

// 通知受众常量
const (
	NotificationAudienceAll  = "all"
	NotificationAudienceUser = "user"
)

// 通知状态常量
const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskNotificationDispatch = "notification:dispatch"
	TaskOrderStatusEmail     = "order:status_email"
	TaskOrderTimeoutCancel   = "order:timeout_cancel"
)

// 设置键常量
const (
	SettingKeySiteConfig  = "site_config"
	SettingKeyOrderConfig = "order_config"
	SettingKeyWechatPay   = "wechatpay_config"
	SettingKeySMTP        = "smtp_config"
)

// 订单设置字段常量
const (
	SettingFieldDeliveryFee          = "delivery_fee"
	SettingFieldPaymentExpireMinutes = "payment_expire_minutes"
)
