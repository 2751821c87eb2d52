package repository

import (
	"context"
	"testing"

	"github.com/RichardSen18/boardgame-store/internal/model"
)

func TestGameCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepo(db)
	ctx := context.Background()

	g := seedGame(t, db, "Catan", 5, 39.99, 4.50)
	if g.ID == 0 {
		t.Fatal("created game has no id")
	}

	byID, err := repo.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Title != "Catan" || byID.Stock != 5 || byID.SalePrice != 39.99 || byID.HourlyPrice != 4.50 {
		t.Errorf("round trip mismatch: %+v", byID)
	}

	byTitle, err := repo.GetByTitle(ctx, "Catan")
	if err != nil {
		t.Fatalf("GetByTitle: %v", err)
	}
	if byTitle.ID != g.ID {
		t.Errorf("GetByTitle id = %d, want %d", byTitle.ID, g.ID)
	}

	if _, err := repo.GetByID(ctx, 9999); err != ErrGameNotFound {
		t.Errorf("missing id: got %v, want ErrGameNotFound", err)
	}
}

func TestGameDuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	seedGame(t, db, "Azul", 3, 29.99, 3.00)

	g := model.Game{Title: "Azul", Stock: 1, SalePrice: 9.99, HourlyPrice: 1.00}
	if err := NewGameRepo(db).Create(context.Background(), &g); err != ErrTitleExists {
		t.Fatalf("duplicate title: got %v, want ErrTitleExists", err)
	}
}

func TestGameListOrderedByTitle(t *testing.T) {
	db := newTestDB(t)
	seedGame(t, db, "Wingspan", 1, 49.99, 5.00)
	seedGame(t, db, "Azul", 1, 29.99, 3.00)
	seedGame(t, db, "Catan", 1, 39.99, 4.00)

	games, err := NewGameRepo(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"Azul", "Catan", "Wingspan"}
	if len(games) != len(want) {
		t.Fatalf("got %d games, want %d", len(games), len(want))
	}
	for i, title := range want {
		if games[i].Title != title {
			t.Errorf("games[%d] = %q, want %q", i, games[i].Title, title)
		}
	}
}

func TestGameUpdateLeavesStockAlone(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepo(db)
	ctx := context.Background()
	g := seedGame(t, db, "Carcassonne", 7, 34.99, 3.50)

	if err := repo.Update(ctx, g.ID, "Carcassonne BE", "New Co", 31.99, 4.00); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Carcassonne BE" || got.SalePrice != 31.99 || got.HourlyPrice != 4.00 {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Stock != 7 {
		t.Errorf("stock changed by Update: %d, want 7", got.Stock)
	}

	if err := repo.Update(ctx, 9999, "Ghost", "", 1, 1); err != ErrGameNotFound {
		t.Errorf("missing id: got %v, want ErrGameNotFound", err)
	}
}

func TestGameRestock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepo(db)
	ctx := context.Background()
	g := seedGame(t, db, "Dixit", 2, 27.99, 2.50)

	if err := repo.Restock(ctx, g.ID, 8); err != nil {
		t.Fatalf("Restock: %v", err)
	}
	got, _ := repo.GetByID(ctx, g.ID)
	if got.Stock != 10 {
		t.Errorf("stock = %d, want 10", got.Stock)
	}

	if err := repo.Restock(ctx, 9999, 1); err != ErrGameNotFound {
		t.Errorf("missing id: got %v, want ErrGameNotFound", err)
	}
}

func TestGameDeleteRestrictedByHistory(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepo(db)
	ctx := context.Background()

	g := seedGame(t, db, "Splendor", 4, 31.99, 3.00)
	buyer := seedUser(t, db, "alice", "CLIENT")
	if _, err := NewSaleRepo(db).Create(ctx, buyer.ID, g.ID, 1); err != nil {
		t.Fatalf("sale: %v", err)
	}

	if err := repo.Delete(ctx, g.ID); err != ErrConflict {
		t.Fatalf("delete with history: got %v, want ErrConflict", err)
	}

	fresh := seedGame(t, db, "Unsold", 1, 10, 1)
	if err := repo.Delete(ctx, fresh.ID); err != nil {
		t.Fatalf("delete without history: %v", err)
	}
	if err := repo.Delete(ctx, fresh.ID); err != ErrGameNotFound {
		t.Errorf("second delete: got %v, want ErrGameNotFound", err)
	}
}
