package pricing

import (
	"testing"
	"time"

	"github.com/delicute/delicute-api/internal/constants"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAggregateLines(t *testing.T) {
	agg := AggregateLines([]Line{
		{Category: "Pizza", Quantity: 2},
		{Category: "pizza", Quantity: 3},
		{Category: "", Quantity: 1},
	})
	if agg.TotalQty != 6 {
		t.Fatalf("total qty = %d, want 6", agg.TotalQty)
	}
	if agg.CategoryQty["pizza"] != 5 {
		t.Fatalf("pizza qty = %d, want 5", agg.CategoryQty["pizza"])
	}
	if agg.CategoryQty[constants.MiscCategory] != 1 {
		t.Fatalf("misc qty = %d, want 1", agg.CategoryQty[constants.MiscCategory])
	}
}

func TestAggregateLinesEmpty(t *testing.T) {
	agg := AggregateLines(nil)
	if agg.TotalQty != 0 || len(agg.CategoryQty) != 0 {
		t.Fatalf("empty cart aggregate = %+v, want zero", agg)
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  happy10 \n"); got != "HAPPY10" {
		t.Fatalf("normalized code = %q, want HAPPY10", got)
	}
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	if got := ResolveWindow(nil, now); got != WindowNotFound {
		t.Fatalf("nil coupon window = %v, want NotFound", got)
	}
	if got := ResolveWindow(&Coupon{StartDate: &tomorrow}, now); got != WindowNotStarted {
		t.Fatalf("future start window = %v, want NotStarted", got)
	}
	if got := ResolveWindow(&Coupon{EndDate: &yesterday}, now); got != WindowExpired {
		t.Fatalf("past end window = %v, want Expired", got)
	}
	if got := ResolveWindow(&Coupon{StartDate: &yesterday, EndDate: &tomorrow}, now); got != WindowActive {
		t.Fatalf("inside window = %v, want Active", got)
	}
	// 两侧为空表示不设界
	if got := ResolveWindow(&Coupon{}, now); got != WindowActive {
		t.Fatalf("unbounded window = %v, want Active", got)
	}
}

func TestWindowMessages(t *testing.T) {
	if msg := WindowNotStarted.Message(); msg != "Coupon has not started yet" {
		t.Fatalf("not started message = %q", msg)
	}
	if msg := WindowExpired.Message(); msg != "Coupon has expired" {
		t.Fatalf("expired message = %q", msg)
	}
	if msg := WindowNotFound.Message(); msg != "Coupon not found" {
		t.Fatalf("not found message = %q", msg)
	}
}

func TestEvaluatePercent(t *testing.T) {
	eval := Evaluate(
		Coupon{Type: constants.CouponTypePercent, Value: dec("10")},
		Facts{Subtotal: dec("500.00")},
	)
	if !eval.Valid {
		t.Fatalf("percent coupon should be valid: %+v", eval)
	}
	if !eval.Discount.Equal(dec("50.00")) {
		t.Fatalf("discount = %s, want 50.00", eval.Discount)
	}
}

func TestEvaluatePercentLowercaseType(t *testing.T) {
	// 历史数据里可能是小写 percent，读取时按大写词表兼容
	eval := Evaluate(
		Coupon{Type: "percent", Value: dec("10")},
		Facts{Subtotal: dec("500.00")},
	)
	if !eval.Valid || !eval.Discount.Equal(dec("50.00")) {
		t.Fatalf("lowercase percent type: %+v", eval)
	}
}

func TestEvaluatePercentRounding(t *testing.T) {
	// 10.10 的 5% = 0.505，远离零进到 0.51
	eval := Evaluate(
		Coupon{Type: constants.CouponTypePercent, Value: dec("5")},
		Facts{Subtotal: dec("10.10")},
	)
	if !eval.Discount.Equal(dec("0.51")) {
		t.Fatalf("half-away-from-zero discount = %s, want 0.51", eval.Discount)
	}
}

func TestEvaluateBuyXCategoryGate(t *testing.T) {
	coupon := Coupon{
		Type:     constants.CouponTypeBuyX,
		Category: "Pizza",
		MinQty:   3,
		Value:    dec("40"),
	}

	short := Evaluate(coupon, Facts{
		Subtotal: dec("100.00"),
		Cart:     AggregateLines([]Line{{Category: "pizza", Quantity: 2}}),
	})
	if short.Valid {
		t.Fatalf("2 pizzas should not satisfy min_qty 3")
	}
	if short.Message == "" {
		t.Fatalf("ineligible result must carry a message")
	}

	enough := Evaluate(coupon, Facts{
		Subtotal: dec("100.00"),
		Cart:     AggregateLines([]Line{{Category: "Pizza", Quantity: 3}}),
	})
	if !enough.Valid {
		t.Fatalf("3 pizzas should satisfy min_qty 3: %+v", enough)
	}
	if !enough.Discount.Equal(dec("40.00")) {
		t.Fatalf("flat discount = %s, want 40.00", enough.Discount)
	}
}

func TestEvaluateBuyXCategoryAbsentFromCart(t *testing.T) {
	// 指定分类但购物车没有该分类：按分类数量 0 判定，不回退到总数量
	eval := Evaluate(
		Coupon{Type: constants.CouponTypeBuyX, Category: "sushi", MinQty: 1, Value: dec("5")},
		Facts{
			Subtotal: dec("100.00"),
			Cart:     AggregateLines([]Line{{Category: "pizza", Quantity: 10}}),
		},
	)
	if eval.Valid {
		t.Fatalf("missing category must gate on category qty 0, got %+v", eval)
	}
}

func TestEvaluateBuyXNoCategory(t *testing.T) {
	coupon := Coupon{Type: constants.CouponTypeBuyX, MinQty: 4, Value: dec("15")}
	facts := Facts{
		Subtotal: dec("80.00"),
		Cart: AggregateLines([]Line{
			{Category: "pizza", Quantity: 2},
			{Category: "drinks", Quantity: 2},
		}),
	}
	eval := Evaluate(coupon, facts)
	if !eval.Valid || !eval.Discount.Equal(dec("15.00")) {
		t.Fatalf("total qty 4 should satisfy min_qty 4: %+v", eval)
	}
}

func TestEvaluateFirstOrderGate(t *testing.T) {
	coupon := Coupon{Type: constants.CouponTypeFirstOrder, Value: dec("30")}

	fresh := Evaluate(coupon, Facts{Subtotal: dec("200.00"), CompletedOrders: 0})
	if !fresh.Valid || !fresh.Discount.Equal(dec("30.00")) {
		t.Fatalf("first order should be valid: %+v", fresh)
	}

	repeat := Evaluate(coupon, Facts{Subtotal: dec("200.00"), CompletedOrders: 1})
	if repeat.Valid {
		t.Fatalf("repeat customer should be rejected")
	}
	if repeat.Message != "Coupon valid only on your first order" {
		t.Fatalf("message = %q", repeat.Message)
	}
}

func TestEvaluateDateRange(t *testing.T) {
	eval := Evaluate(
		Coupon{Type: constants.CouponTypeDateRange, Value: dec("25")},
		Facts{Subtotal: dec("120.00")},
	)
	if !eval.Valid || !eval.Discount.Equal(dec("25.00")) {
		t.Fatalf("active date range coupon: %+v", eval)
	}
}

func TestEvaluateDiscountClamp(t *testing.T) {
	eval := Evaluate(
		Coupon{Type: constants.CouponTypeDateRange, Value: dec("50")},
		Facts{Subtotal: dec("20.00")},
	)
	if !eval.Valid {
		t.Fatalf("clamped coupon still valid: %+v", eval)
	}
	if !eval.Discount.Equal(dec("20.00")) {
		t.Fatalf("discount = %s, want clamp to 20.00", eval.Discount)
	}
}

func TestEvaluateUnknownType(t *testing.T) {
	eval := Evaluate(
		Coupon{Type: "BOGUS", Value: dec("10")},
		Facts{Subtotal: dec("100.00")},
	)
	if eval.Valid {
		t.Fatalf("unknown type must be ineligible")
	}
	if eval.Message != "Unknown coupon type" {
		t.Fatalf("message = %q, want Unknown coupon type", eval.Message)
	}
}

func TestTotalAssembly(t *testing.T) {
	total := Total(dec("500.00"), dec("50.00"), dec("10.00"), 3)
	if !total.Equal(dec("460.00")) {
		t.Fatalf("total = %s, want 460.00", total)
	}
}

func TestTotalEmptyCartSkipsDeliveryFee(t *testing.T) {
	total := Total(dec("0.00"), dec("0.00"), dec("10.00"), 0)
	if !total.Equal(dec("0.00")) {
		t.Fatalf("empty cart total = %s, want 0.00", total)
	}
}

func TestTotalNeverNegative(t *testing.T) {
	total := Total(dec("20.00"), dec("50.00"), dec("5.00"), 1)
	if total.IsNegative() {
		t.Fatalf("total = %s, must not be negative", total)
	}
}

func TestTotalIdempotent(t *testing.T) {
	a := Total(dec("123.45"), dec("23.45"), dec("7.50"), 2)
	b := Total(dec("123.45"), dec("23.45"), dec("7.50"), 2)
	if !a.Equal(b) {
		t.Fatalf("total not deterministic: %s vs %s", a, b)
	}
}
