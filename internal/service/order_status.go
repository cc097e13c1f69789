package service

import (
	"strings"

	"github.com/delicute/delicute-api/internal/constants"
)

// orderStatusTransitions 订单状态机：键为当前状态，值为允许迁入的状态
var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed,
		constants.OrderStatusCanceled,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusPreparing,
		constants.OrderStatusCanceled,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusDelivered,
		constants.OrderStatusCanceled,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCompleted,
	},
}

// NormalizeOrderStatus 规范化订单状态，非法状态返回空串
func NormalizeOrderStatus(raw string) string {
	status := strings.ToLower(strings.TrimSpace(raw))
	switch status {
	case constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusPreparing,
		constants.OrderStatusDelivered,
		constants.OrderStatusCompleted,
		constants.OrderStatusCanceled:
		return status
	default:
		return ""
	}
}

// CanTransitionOrderStatus 判断订单状态迁移是否允许
func CanTransitionOrderStatus(from, to string) bool {
	for _, allowed := range orderStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
