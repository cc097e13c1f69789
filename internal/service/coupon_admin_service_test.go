package service

import (
	"errors"
	"testing"
	"time"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/repository"

	"github.com/shopspring/decimal"
)

func newCouponAdminServiceTest(t *testing.T) *CouponAdminService {
	t.Helper()
	db := setupServiceDB(t)
	return NewCouponAdminService(repository.NewCouponRepository(db))
}

func TestCreateCouponNormalizesCodeAndType(t *testing.T) {
	svc := newCouponAdminServiceTest(t)
	coupon, err := svc.Create(CouponInput{
		Code:     "  save10 ",
		Type:     "percent",
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Category: " Pizza ",
	})
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if coupon.Code != "SAVE10" {
		t.Fatalf("code want SAVE10, got %s", coupon.Code)
	}
	if coupon.Type != constants.CouponTypePercent {
		t.Fatalf("type want PERCENT, got %s", coupon.Type)
	}
	if coupon.Category != "pizza" {
		t.Fatalf("category want pizza, got %s", coupon.Category)
	}
	if !coupon.IsActive {
		t.Fatalf("expected active by default")
	}
}

func TestCreateCouponRejectsDuplicateCode(t *testing.T) {
	svc := newCouponAdminServiceTest(t)
	input := CouponInput{
		Code:  "SAVE10",
		Type:  constants.CouponTypePercent,
		Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	input.Code = "save10"
	if _, err := svc.Create(input); !errors.Is(err, ErrCouponExists) {
		t.Fatalf("expected ErrCouponExists, got %v", err)
	}
}

func TestCreateCouponValidation(t *testing.T) {
	svc := newCouponAdminServiceTest(t)
	cases := []CouponInput{
		{Code: "", Type: constants.CouponTypePercent, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10))},
		{Code: "P101", Type: constants.CouponTypePercent, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(101))},
		{Code: "NEG", Type: constants.CouponTypePercent, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(-1))},
		{Code: "BOGUS", Type: "MYSTERY", Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10))},
		{Code: "NOQTY", Type: constants.CouponTypeBuyX, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), MinQty: 0},
	}
	for _, input := range cases {
		if _, err := svc.Create(input); !errors.Is(err, ErrCouponInvalid) {
			t.Fatalf("input %+v expected ErrCouponInvalid, got %v", input, err)
		}
	}

	start := time.Now()
	end := start.Add(-time.Hour)
	if _, err := svc.Create(CouponInput{
		Code:      "BADWIN",
		Type:      constants.CouponTypeDateRange,
		Value:     models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		StartDate: &start,
		EndDate:   &end,
	}); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid for inverted window, got %v", err)
	}
}

func TestUpdateCouponChangesCode(t *testing.T) {
	svc := newCouponAdminServiceTest(t)
	created, err := svc.Create(CouponInput{
		Code:  "OLD",
		Type:  constants.CouponTypePercent,
		Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	})
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, err := svc.Create(CouponInput{
		Code:  "TAKEN",
		Type:  constants.CouponTypePercent,
		Value: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
	}); err != nil {
		t.Fatalf("create second coupon failed: %v", err)
	}

	if _, err := svc.Update(created.ID, CouponInput{
		Code:  "taken",
		Type:  constants.CouponTypePercent,
		Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	}); !errors.Is(err, ErrCouponExists) {
		t.Fatalf("expected ErrCouponExists, got %v", err)
	}

	updated, err := svc.Update(created.ID, CouponInput{
		Code:  "fresh",
		Type:  constants.CouponTypePercent,
		Value: models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
	})
	if err != nil {
		t.Fatalf("update coupon failed: %v", err)
	}
	if updated.Code != "FRESH" {
		t.Fatalf("code want FRESH, got %s", updated.Code)
	}
}

func TestDeleteCoupon(t *testing.T) {
	svc := newCouponAdminServiceTest(t)
	created, err := svc.Create(CouponInput{
		Code:  "BYE",
		Type:  constants.CouponTypePercent,
		Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	})
	if err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete coupon failed: %v", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}
