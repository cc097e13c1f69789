package service

import (
	"errors"
	"testing"
	"time"

	"github.com/delicute/delicute-api/internal/config"
	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	settingService := NewSettingService(repository.NewSettingRepository(db))
	pricingService := NewPricingService(
		repository.NewCartRepository(db),
		repository.NewCouponRepository(db),
		repository.NewOrderRepository(db),
		settingService,
	)
	cfg := &config.Config{Order: config.OrderConfig{PaymentExpireMinutes: 15}}
	svc := NewOrderService(
		db,
		cfg,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		pricingService,
		settingService,
		nil,
		nil,
	)
	return svc, db
}

func TestCheckoutCreatesOrderSnapshotAndClearsCart(t *testing.T) {
	svc, db := newOrderServiceTest(t)
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

	order, err := svc.Checkout(1, CheckoutInput{
		Address:    "1 Main St",
		Phone:      "555-0100",
		CouponCode: "save10",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected generated order number")
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending, got %s", order.Status)
	}
	if order.CouponCode != "SAVE10" {
		t.Fatalf("coupon code want SAVE10, got %s", order.CouponCode)
	}
	if order.Subtotal.String() != "270.00" {
		t.Fatalf("subtotal want 270.00, got %s", order.Subtotal.String())
	}
	if order.Discount.String() != "27.00" {
		t.Fatalf("discount want 27.00, got %s", order.Discount.String())
	}
	if order.Total.String() != "248.00" {
		t.Fatalf("total want 248.00, got %s", order.Total.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Name == "" || item.Price.IsZero() {
			t.Fatalf("order line missing snapshot fields: %+v", item)
		}
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d lines", cartCount)
	}
}

func TestCheckoutRejectsEmptyCartAndMissingAddress(t *testing.T) {
	svc, _ := newOrderServiceTest(t)

	if _, err := svc.Checkout(1, CheckoutInput{Address: "  "}); !errors.Is(err, ErrAddressRequired) {
		t.Fatalf("expected ErrAddressRequired, got %v", err)
	}
	if _, err := svc.Checkout(1, CheckoutInput{Address: "1 Main St"}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutRejectsIneligibleCoupon(t *testing.T) {
	svc, db := newOrderServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)

	_, err := svc.Checkout(1, CheckoutInput{Address: "1 Main St", CouponCode: "NOPE"})
	if !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid, got %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no order created, got %d", orderCount)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, db := newOrderServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)
	order, err := svc.Checkout(1, CheckoutInput{Address: "1 Main St"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, "delivered"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for pending->delivered, got %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, "teleported"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for unknown status, got %v", err)
	}

	for _, status := range []string{"confirmed", "preparing", "delivered", "completed"} {
		updated, err := svc.UpdateStatus(order.ID, status)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("status want %s, got %s", status, updated.Status)
		}
	}

	if _, err := svc.UpdateStatus(order.ID, "canceled"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for completed->canceled, got %v", err)
	}
}

func TestCancelByUser(t *testing.T) {
	svc, db := newOrderServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)
	order, err := svc.Checkout(1, CheckoutInput{Address: "1 Main St"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := svc.CancelByUser(2, order.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}

	canceled, err := svc.CancelByUser(1, order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled {
		t.Fatalf("status want canceled, got %s", canceled.Status)
	}

	if _, err := svc.CancelByUser(1, order.ID); !errors.Is(err, ErrOrderNotCancelable) {
		t.Fatalf("expected ErrOrderNotCancelable, got %v", err)
	}
}

func TestHandlePaymentPaidAdvancesOrder(t *testing.T) {
	svc, db := newOrderServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)
	order, err := svc.Checkout(1, CheckoutInput{Address: "1 Main St"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	paidAt := time.Now()
	if err := svc.HandlePaymentPaid(order.ID, paidAt); err != nil {
		t.Fatalf("handle payment paid failed: %v", err)
	}
	// 幂等：重复回调不报错也不重复推进
	if err := svc.HandlePaymentPaid(order.ID, paidAt); err != nil {
		t.Fatalf("second handle payment paid failed: %v", err)
	}

	got, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status want confirmed, got %s", got.Status)
	}
	if got.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("payment status want paid, got %s", got.PaymentStatus)
	}
}

func TestTimeoutCancelIdempotent(t *testing.T) {
	svc, db := newOrderServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	seedCartItem(t, db, 1, pizza.ID, 1)
	order, err := svc.Checkout(1, CheckoutInput{Address: "1 Main St"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if err := svc.TimeoutCancel(order.ID); err != nil {
		t.Fatalf("timeout cancel failed: %v", err)
	}
	got, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusCanceled {
		t.Fatalf("status want canceled, got %s", got.Status)
	}
	if got.PaymentStatus != constants.PaymentStatusExpired {
		t.Fatalf("payment status want expired, got %s", got.PaymentStatus)
	}

	// 重复触发与针对已支付订单触发都应是 no-op
	if err := svc.TimeoutCancel(order.ID); err != nil {
		t.Fatalf("second timeout cancel failed: %v", err)
	}
	if err := svc.TimeoutCancel(9999); err != nil {
		t.Fatalf("timeout cancel missing order failed: %v", err)
	}
}
