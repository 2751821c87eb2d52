package repository

import (
	"context"
	"testing"
	"time"
)

func TestSaleCreateDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Catan", 5, 39.99, 4.50)
	buyer := seedUser(t, db, "alice", "CLIENT")

	repo := NewSaleRepo(db)
	sale, err := repo.Create(ctx, buyer.ID, g.ID, 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sale.ID == 0 {
		t.Fatal("sale has no id")
	}
	if sale.TotalPrice != 79.98 {
		t.Errorf("total = %v, want 79.98", sale.TotalPrice)
	}
	if sale.SoldAt.IsZero() {
		t.Error("sold_at not stamped")
	}

	got, _ := NewGameRepo(db).GetByID(ctx, g.ID)
	if got.Stock != 3 {
		t.Errorf("stock = %d, want 3", got.Stock)
	}

	fetched, err := repo.GetByID(ctx, sale.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.BuyerID != buyer.ID || fetched.GameID != g.ID || fetched.Quantity != 2 {
		t.Errorf("round trip mismatch: %+v", fetched)
	}
}

func TestSaleInsufficientStockLeavesStockUnchanged(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Azul", 2, 29.99, 3.00)
	buyer := seedUser(t, db, "bob", "CLIENT")

	_, err := NewSaleRepo(db).Create(ctx, buyer.ID, g.ID, 3)
	if !IsInsufficientStock(err) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	ise := err.(*InsufficientStockError)
	if ise.GameID != g.ID || ise.Requested != 3 || ise.Available != 2 {
		t.Errorf("error fields: %+v", ise)
	}

	got, _ := NewGameRepo(db).GetByID(ctx, g.ID)
	if got.Stock != 2 {
		t.Errorf("stock = %d, want 2 (unchanged)", got.Stock)
	}
	sales, _ := NewSaleRepo(db).ListByBuyer(ctx, buyer.ID)
	if len(sales) != 0 {
		t.Errorf("rejected sale left %d rows", len(sales))
	}
}

func TestSaleInvalidQuantity(t *testing.T) {
	db := newTestDB(t)
	g := seedGame(t, db, "Dixit", 2, 27.99, 2.50)
	buyer := seedUser(t, db, "carol", "CLIENT")

	repo := NewSaleRepo(db)
	for _, qty := range []int{0, -1} {
		if _, err := repo.Create(context.Background(), buyer.ID, g.ID, qty); err != ErrInvalidQuantity {
			t.Errorf("qty %d: got %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestSaleUnknownGame(t *testing.T) {
	db := newTestDB(t)
	buyer := seedUser(t, db, "dave", "CLIENT")
	if _, err := NewSaleRepo(db).Create(context.Background(), buyer.ID, 9999, 1); err != ErrGameNotFound {
		t.Fatalf("got %v, want ErrGameNotFound", err)
	}
}

func TestSaleDeleteRestoresStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Splendor", 4, 31.99, 3.00)
	buyer := seedUser(t, db, "erin", "CLIENT")

	repo := NewSaleRepo(db)
	sale, err := repo.Create(ctx, buyer.ID, g.ID, 3)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, sale.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := NewGameRepo(db).GetByID(ctx, g.ID)
	if got.Stock != 4 {
		t.Errorf("stock = %d, want 4 after reversal", got.Stock)
	}
	if _, err := repo.GetByID(ctx, sale.ID); err != ErrSaleNotFound {
		t.Errorf("deleted sale still readable: %v", err)
	}
	if err := repo.Delete(ctx, sale.ID); err != ErrSaleNotFound {
		t.Errorf("second delete: got %v, want ErrSaleNotFound", err)
	}
}

func TestSaleListByBuyerNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	g := seedGame(t, db, "Wingspan", 10, 49.99, 5.00)
	buyer := seedUser(t, db, "frank", "CLIENT")
	other := seedUser(t, db, "grace", "CLIENT")

	repo := NewSaleRepo(db)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		repo.Now = func() time.Time { return at }
		if _, err := repo.Create(ctx, buyer.ID, g.ID, 1); err != nil {
			t.Fatalf("sale %d: %v", i, err)
		}
	}
	repo.Now = time.Now
	if _, err := repo.Create(ctx, other.ID, g.ID, 1); err != nil {
		t.Fatalf("other buyer sale: %v", err)
	}

	sales, err := repo.ListByBuyer(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("ListByBuyer: %v", err)
	}
	if len(sales) != 3 {
		t.Fatalf("got %d sales, want 3", len(sales))
	}
	for i := 1; i < len(sales); i++ {
		if sales[i].SoldAt.After(sales[i-1].SoldAt) {
			t.Errorf("sales out of order at %d: %v after %v", i, sales[i].SoldAt, sales[i-1].SoldAt)
		}
	}
}
