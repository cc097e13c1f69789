package service

import (
	"errors"
	"testing"

	"github.com/delicute/delicute-api/internal/repository"

	"gorm.io/gorm"
)

func newCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	svc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewMenuItemRepository(db),
	)
	return svc, db
}

func TestUpsertItemLastWriteWins(t *testing.T) {
	svc, db := newCartServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)

	if _, err := svc.UpsertItem(1, pizza.ID, 2); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	item, err := svc.UpsertItem(1, pizza.ID, 5)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("quantity want 5, got %d", item.Quantity)
	}

	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single cart line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("persisted quantity want 5, got %d", items[0].Quantity)
	}
}

func TestUpsertItemRejectsInvalidQuantity(t *testing.T) {
	svc, db := newCartServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)

	if _, err := svc.UpsertItem(1, pizza.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.UpsertItem(1, pizza.ID, -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpsertItemRejectsUnavailableMenuItem(t *testing.T) {
	svc, db := newCartServiceTest(t)
	retired := seedMenuItem(t, db, "Old Special", "pizza", "50.00", false)

	if _, err := svc.UpsertItem(1, retired.ID, 1); !errors.Is(err, ErrMenuItemUnavailable) {
		t.Fatalf("expected ErrMenuItemUnavailable, got %v", err)
	}
	if _, err := svc.UpsertItem(1, 9999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByUserHidesUnavailableLines(t *testing.T) {
	svc, db := newCartServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	retired := seedMenuItem(t, db, "Old Special", "pizza", "50.00", true)

	if _, err := svc.UpsertItem(1, pizza.ID, 1); err != nil {
		t.Fatalf("upsert pizza failed: %v", err)
	}
	if _, err := svc.UpsertItem(1, retired.ID, 2); err != nil {
		t.Fatalf("upsert retired failed: %v", err)
	}

	retired.IsAvailable = false
	if err := db.Save(retired).Error; err != nil {
		t.Fatalf("retire menu item failed: %v", err)
	}

	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 visible line, got %d", len(items))
	}
	if items[0].MenuItemID != pizza.ID {
		t.Fatalf("unexpected visible line: %d", items[0].MenuItemID)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	svc, db := newCartServiceTest(t)
	pizza := seedMenuItem(t, db, "Margherita", "pizza", "100.00", true)
	cola := seedMenuItem(t, db, "Cola", "drinks", "10.00", true)

	if _, err := svc.UpsertItem(1, pizza.ID, 1); err != nil {
		t.Fatalf("upsert pizza failed: %v", err)
	}
	if _, err := svc.UpsertItem(1, cola.ID, 2); err != nil {
		t.Fatalf("upsert cola failed: %v", err)
	}

	if err := svc.RemoveItem(1, pizza.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if err := svc.RemoveItem(1, pizza.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}

	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}
}
