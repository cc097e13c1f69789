// Package pricing 实现购物车计价与优惠券核心引擎。
// 引擎为纯函数集合：聚合、券窗口判定、资格与折扣计算、总价装配，
// 不读数据库、不取系统时钟，全部输入由调用方注入。
package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/delicute/delicute-api/internal/constants"

	"github.com/shopspring/decimal"
)

// Line 参与聚合的一行购物车（已联菜品分类）
type Line struct {
	Category string
	Quantity int
}

// Aggregate 聚合结果：总数量与按分类（小写）汇总的数量
type Aggregate struct {
	TotalQty    int
	CategoryQty map[string]int
}

// AggregateLines 聚合购物车行
// 分类统一小写，空白分类归入 misc 桶；空输入返回零值聚合。
func AggregateLines(lines []Line) Aggregate {
	agg := Aggregate{CategoryQty: make(map[string]int, len(lines))}
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		agg.TotalQty += line.Quantity
		agg.CategoryQty[NormalizeCategory(line.Category)] += line.Quantity
	}
	return agg
}

// NormalizeCode 规范化优惠码：去首尾空白并大写
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NormalizeCategory 规范化分类：去首尾空白并小写，空白归入 misc
func NormalizeCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return constants.MiscCategory
	}
	return c
}

// NormalizeType 规范化券类型（统一大写词表，读取时兼容历史小写数据）
func NormalizeType(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Coupon 引擎视角的优惠券条款
type Coupon struct {
	Code        string
	Type        string
	Description string
	Value       decimal.Decimal
	MinQty      int
	Category    string
	StartDate   *time.Time
	EndDate     *time.Time
}

// WindowStatus 券时间窗口判定结果
type WindowStatus int

const (
	WindowActive     WindowStatus = iota // 窗口内，可继续评估
	WindowNotFound                       // 券不存在
	WindowNotStarted                     // 尚未开始
	WindowExpired                        // 已过期
)

// Message 窗口判定对应的用户提示
func (s WindowStatus) Message() string {
	switch s {
	case WindowNotFound:
		return "Coupon not found"
	case WindowNotStarted:
		return "Coupon has not started yet"
	case WindowExpired:
		return "Coupon has expired"
	default:
		return ""
	}
}

// ResolveWindow 判定券在 now 时刻的窗口状态
// start_date / end_date 为空表示该侧不设界。
func ResolveWindow(c *Coupon, now time.Time) WindowStatus {
	if c == nil {
		return WindowNotFound
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return WindowNotStarted
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return WindowExpired
	}
	return WindowActive
}

// Facts 资格判定所需的事实输入
type Facts struct {
	Subtotal        decimal.Decimal // 购物车小计（未折扣）
	Cart            Aggregate       // 聚合后的数量
	CompletedOrders int64           // 用户历史完成订单数（FIRST_ORDER 用）
}

// Evaluation 资格与折扣计算结果
// 不合格不是错误：Valid=false 且 Message 给出人类可读原因。
type Evaluation struct {
	Valid    bool
	Message  string
	Discount decimal.Decimal
}

func ineligible(message string) Evaluation {
	return Evaluation{Valid: false, Message: message, Discount: decimal.Zero}
}

// Evaluate 对窗口内的券按类型计算资格与折扣
// 折扣始终被夹在 [0, subtotal] 内并保留 2 位小数（四舍五入远离零）。
func Evaluate(c Coupon, f Facts) Evaluation {
	var discount decimal.Decimal
	switch NormalizeType(c.Type) {
	case constants.CouponTypePercent:
		discount = Round2(f.Subtotal.Mul(c.Value).Div(decimal.NewFromInt(100)))
	case constants.CouponTypeBuyX:
		qty := f.Cart.TotalQty
		if strings.TrimSpace(c.Category) != "" {
			// 指定了分类时以分类数量为准，分类不在购物车里即数量为 0
			qty = f.Cart.CategoryQty[NormalizeCategory(c.Category)]
		}
		if qty < c.MinQty {
			return ineligible(buyXMessage(c))
		}
		discount = c.Value
	case constants.CouponTypeFirstOrder:
		if f.CompletedOrders > 0 {
			return ineligible("Coupon valid only on your first order")
		}
		discount = c.Value
	case constants.CouponTypeDateRange:
		// 窗口判定已在 ResolveWindow 完成，直接给固定减免
		discount = c.Value
	default:
		return ineligible("Unknown coupon type")
	}

	discount = Round2(discount)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(f.Subtotal) {
		discount = f.Subtotal
	}
	return Evaluation{Valid: true, Discount: discount}
}

func buyXMessage(c Coupon) string {
	if strings.TrimSpace(c.Category) != "" {
		return fmt.Sprintf("Coupon requires at least %d %s items", c.MinQty, NormalizeCategory(c.Category))
	}
	return fmt.Sprintf("Coupon requires at least %d items", c.MinQty)
}

// Round2 货币取整：2 位小数，四舍五入远离零
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Total 装配应付总额
// total = round2(round2(subtotal − discount) + 配送费)，购物车为空时不收配送费。
func Total(subtotal, discount, deliveryFee decimal.Decimal, itemCount int) decimal.Decimal {
	total := Round2(subtotal.Sub(discount))
	if total.IsNegative() {
		total = decimal.Zero
	}
	if itemCount > 0 {
		total = total.Add(deliveryFee)
	}
	return Round2(total)
}
