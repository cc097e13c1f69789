package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newPricingServiceTest(t *testing.T) (*PricingService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	svc := NewPricingService(
		repository.NewCartRepository(db),
		repository.NewCouponRepository(db),
		repository.NewOrderRepository(db),
		NewSettingService(repository.NewSettingRepository(db)),
	)
	return svc, db
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, category string, price string, available bool) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Name:        name,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Category:    category,
		IsAvailable: available,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed menu item failed: %v", err)
	}
	// 字段带 default:true 标签时 GORM 会跳过零值 false，需显式写入
	if !available {
		if err := db.Model(item).Update("is_available", false).Error; err != nil {
			t.Fatalf("seed menu item availability failed: %v", err)
		}
	}
	return item
}

func seedCartItem(t *testing.T, db *gorm.DB, userID, menuItemID uint, quantity int) {
	t.Helper()
	if err := db.Create(&models.CartItem{
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
	}).Error; err != nil {
		t.Fatalf("seed cart item failed: %v", err)
	}
}

func seedCoupon(t *testing.T, db *gorm.DB, coupon *models.Coupon) {
	t.Helper()
	// 字段带 default:true 标签时 GORM 会跳过零值 false 并把默认值回写结构体，
	// 先记录期望值，创建后显式写入
	active := coupon.IsActive
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("seed coupon failed: %v", err)
	}
	if !active {
		if err := db.Model(coupon).Update("is_active", false).Error; err != nil {
			t.Fatalf("seed coupon active flag failed: %v", err)
		}
		coupon.IsActive = false
	}
}

func TestQuoteCartWithPercentCoupon(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "120.00", true)
	cola := seedMenuItem(t, db, "Cola", "drinks", "10.00", true)
	seedCartItem(t, db, 1, pizza.ID, 2)
	seedCartItem(t, db, 1, cola.ID, 3)
	seedCoupon(t, db, &models.Coupon{
		Code:     "SAVE10",
		Type:     constants.CouponTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive: true,
	})

	quote, err := svc.QuoteCart(1, " save10 ")
	if err != nil {
		t.Fatalf("quote cart failed: %v", err)
	}
	if quote.Subtotal.String() != "270.00" {
		t.Fatalf("subtotal want 270.00, got %s", quote.Subtotal.String())
	}
	if quote.Coupon == nil || !quote.Coupon.Valid {
		t.Fatalf("expected coupon valid, got %+v", quote.Coupon)
	}
	if quote.Coupon.Code != "SAVE10" {
		t.Fatalf("coupon code want SAVE10, got %s", quote.Coupon.Code)
	}
	if quote.Discount.String() != "27.00" {
		t.Fatalf("discount want 27.00, got %s", quote.Discount.String())
	}
	// 默认配送费 5.00：270 - 27 + 5
	if quote.Total.String() != "248.00" {
		t.Fatalf("total want 248.00, got %s", quote.Total.String())
	}
	if quote.ItemCount != 5 {
		t.Fatalf("item count want 5, got %d", quote.ItemCount)
	}
}

func TestQuoteCartSkipsUnavailableItems(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	retired := seedMenuItem(t, db, "Old Special", "pizza", "50.00", false)
	seedCartItem(t, db, 1, pizza.ID, 1)
	seedCartItem(t, db, 1, retired.ID, 2)

	quote, err := svc.QuoteCart(1, "")
	if err != nil {
		t.Fatalf("quote cart failed: %v", err)
	}
	if len(quote.Items) != 1 {
		t.Fatalf("expected 1 quotable line, got %d", len(quote.Items))
	}
	if quote.Subtotal.String() != "100.00" {
		t.Fatalf("subtotal want 100.00, got %s", quote.Subtotal.String())
	}
}

func TestQuoteCartEmptyCartNoDeliveryFee(t *testing.T) {
	svc, _ := newPricingServiceTest(t)
	quote, err := svc.QuoteCart(42, "")
	if err != nil {
		t.Fatalf("quote cart failed: %v", err)
	}
	if quote.DeliveryFee.String() != "0.00" {
		t.Fatalf("delivery fee want 0.00, got %s", quote.DeliveryFee.String())
	}
	if quote.Total.String() != "0.00" {
		t.Fatalf("total want 0.00, got %s", quote.Total.String())
	}
}

func TestQuoteCartDeliveryFeeFromSetting(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)
	if err := db.Create(&models.Setting{
		Key:       constants.SettingKeyOrderConfig,
		ValueJSON: models.JSON{constants.SettingFieldDeliveryFee: "8.50"},
	}).Error; err != nil {
		t.Fatalf("seed setting failed: %v", err)
	}

	quote, err := svc.QuoteCart(1, "")
	if err != nil {
		t.Fatalf("quote cart failed: %v", err)
	}
	if quote.DeliveryFee.String() != "8.50" {
		t.Fatalf("delivery fee want 8.50, got %s", quote.DeliveryFee.String())
	}
	if quote.Total.String() != "108.50" {
		t.Fatalf("total want 108.50, got %s", quote.Total.String())
	}
}

func TestQuoteCartExpiredCouponStillQuotes(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)
	ended := time.Now().Add(-time.Hour)
	seedCoupon(t, db, &models.Coupon{
		Code:     "GONE",
		Type:     constants.CouponTypeDateRange,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		EndDate:  &ended,
		IsActive: true,
	})

	quote, err := svc.QuoteCart(1, "GONE")
	if err != nil {
		t.Fatalf("quote cart failed: %v", err)
	}
	if quote.Coupon == nil || quote.Coupon.Valid {
		t.Fatalf("expected coupon invalid, got %+v", quote.Coupon)
	}
	if quote.Coupon.Message != "Coupon has expired" {
		t.Fatalf("unexpected message: %s", quote.Coupon.Message)
	}
	if quote.Discount.String() != "0.00" {
		t.Fatalf("discount want 0.00, got %s", quote.Discount.String())
	}
	if quote.Total.String() != "105.00" {
		t.Fatalf("total want 105.00, got %s", quote.Total.String())
	}
}

func TestValidateCouponWithCallerItems(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	seedCoupon(t, db, &models.Coupon{
		Code:     "PIZZA3",
		Type:     constants.CouponTypeBuyX,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(40)),
		MinQty:   3,
		Category: "pizza",
		IsActive: true,
	})

	check, err := svc.ValidateCoupon(1, "pizza3", []ValidateItemInput{
		{Category: "Pizza", Quantity: 2},
		{Category: "drinks", Quantity: 5},
	})
	if err != nil {
		t.Fatalf("validate coupon failed: %v", err)
	}
	if check.Valid {
		t.Fatalf("expected invalid with 2 pizzas, got valid")
	}
	if check.Message != "Coupon requires at least 3 pizza items" {
		t.Fatalf("unexpected message: %s", check.Message)
	}

	check, err = svc.ValidateCoupon(1, "pizza3", []ValidateItemInput{
		{Category: "PIZZA", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("validate coupon failed: %v", err)
	}
	if !check.Valid {
		t.Fatalf("expected valid with 3 pizzas, got %s", check.Message)
	}
}

func TestValidateCouponFallsBackToCart(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "80.00", true)
	seedCartItem(t, db, 7, pizza.ID, 4)
	seedCoupon(t, db, &models.Coupon{
		Code:     "PIZZA3",
		Type:     constants.CouponTypeBuyX,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(40)),
		MinQty:   3,
		Category: "pizza",
		IsActive: true,
	})

	check, err := svc.ValidateCoupon(7, "PIZZA3", nil)
	if err != nil {
		t.Fatalf("validate coupon failed: %v", err)
	}
	if !check.Valid {
		t.Fatalf("expected valid from cart contents, got %s", check.Message)
	}
}

func TestValidateCouponFirstOrderGate(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "80.00", true)
	seedCartItem(t, db, 9, pizza.ID, 1)
	seedCoupon(t, db, &models.Coupon{
		Code:     "WELCOME",
		Type:     constants.CouponTypeFirstOrder,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
		IsActive: true,
	})

	check, err := svc.ValidateCoupon(9, "WELCOME", nil)
	if err != nil {
		t.Fatalf("validate coupon failed: %v", err)
	}
	if !check.Valid {
		t.Fatalf("expected valid for new user, got %s", check.Message)
	}

	if err := db.Create(&models.Order{
		OrderNo:       "DLC-TEST-1",
		UserID:        9,
		Status:        constants.OrderStatusCompleted,
		Subtotal:      models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
		Total:         models.NewMoneyFromDecimal(decimal.NewFromInt(85)),
		PaymentStatus: constants.PaymentStatusPaid,
	}).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	check, err = svc.ValidateCoupon(9, "WELCOME", nil)
	if err != nil {
		t.Fatalf("validate coupon failed: %v", err)
	}
	if check.Valid {
		t.Fatalf("expected invalid after completed order")
	}
	if check.Message != "Coupon valid only on your first order" {
		t.Fatalf("unexpected message: %s", check.Message)
	}
}

func TestValidateCouponUnknownCode(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "80.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)

	check, err := svc.ValidateCoupon(1, "NOPE", nil)
	if err != nil {
		t.Fatalf("validate coupon failed: %v", err)
	}
	if check.Valid {
		t.Fatalf("expected invalid for unknown code")
	}
	if check.Message != "Coupon not found" {
		t.Fatalf("unexpected message: %s", check.Message)
	}
}

func TestValidateCouponInactiveTreatedAsNotFound(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "80.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)
	seedCoupon(t, db, &models.Coupon{
		Code:     "PAUSED",
		Type:     constants.CouponTypePercent,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive: false,
	})

	check, err := svc.ValidateCoupon(1, "PAUSED", nil)
	if err != nil {
		t.Fatalf("validate coupon failed: %v", err)
	}
	if check.Valid || check.Message != "Coupon not found" {
		t.Fatalf("expected not found for inactive coupon, got %+v", check)
	}
}

func TestValidateCouponBlankCode(t *testing.T) {
	svc, _ := newPricingServiceTest(t)
	if _, err := svc.ValidateCoupon(1, "   ", nil); err != ErrCouponInvalid {
		t.Fatalf("expected ErrCouponInvalid, got %v", err)
	}
}

func TestQuoteCartFrozenClock(t *testing.T) {
	svc, db := newPricingServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)
	seedCoupon(t, db, &models.Coupon{
		Code:      "SEPT",
		Type:      constants.CouponTypeDateRange,
		Value:     models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		StartDate: &start,
		EndDate:   &end,
		IsActive:  true,
	})

	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	quote, err := svc.QuoteCart(1, "SEPT")
	if err != nil {
		t.Fatalf("quote cart failed: %v", err)
	}
	if quote.Coupon.Valid || quote.Coupon.Message != "Coupon has not started yet" {
		t.Fatalf("expected not started, got %+v", quote.Coupon)
	}

	svc.now = func() time.Time { return time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC) }
	quote, err = svc.QuoteCart(1, "SEPT")
	if err != nil {
		t.Fatalf("quote cart failed: %v", err)
	}
	if !quote.Coupon.Valid {
		t.Fatalf("expected valid inside window, got %s", quote.Coupon.Message)
	}
}
