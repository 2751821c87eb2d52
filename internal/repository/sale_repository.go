package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/RichardSen18/boardgame-store/internal/model"
	"github.com/RichardSen18/boardgame-store/internal/utils"
)

// SaleRepo records sales against catalog stock. Both the sale creation and
// its compensating deletion run as single transactions so the stock change
// and the sale row are kept or discarded together.
type SaleRepo struct {
	db *sql.DB

	// Now supplies timestamps for sale rows. Overridable in tests.
	Now func() time.Time
}

// NewSaleRepo returns a SaleRepo bound to the given database.
func NewSaleRepo(db *sql.DB) *SaleRepo {
	return &SaleRepo{db: db, Now: time.Now}
}

// ErrInvalidQuantity rejects sales with a non-positive quantity before any
// database work happens.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Create sells qty copies of a game to a buyer. It verifies the game
// exists, decrements stock and inserts the sale row priced at
// qty * sale_price as one all-or-nothing unit. The stock decrement is a
// conditional UPDATE (stock >= qty) so two concurrent sales can never drive
// stock negative regardless of isolation level. Returns
// *InsufficientStockError when stock is too low and ErrGameNotFound when
// the game is absent.
func (r *SaleRepo) Create(ctx context.Context, buyerID, gameID uint64, qty int) (model.Sale, error) {
	if qty <= 0 {
		return model.Sale{}, ErrInvalidQuantity
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Sale{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var stock int
	var salePrice float64
	err = tx.QueryRowContext(ctx,
		"SELECT stock, sale_price FROM games WHERE id = ?", gameID).Scan(&stock, &salePrice)
	if err == sql.ErrNoRows {
		return model.Sale{}, ErrGameNotFound
	}
	if err != nil {
		return model.Sale{}, err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE games SET stock = stock - ? WHERE id = ? AND stock >= ?",
		qty, gameID, qty)
	if err != nil {
		return model.Sale{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Sale{}, err
	}
	if n == 0 {
		// The guard did not match: stock moved below qty since the read.
		return model.Sale{}, &InsufficientStockError{GameID: gameID, Requested: qty, Available: stock}
	}

	sale := model.Sale{
		BuyerID:    buyerID,
		GameID:     gameID,
		Quantity:   qty,
		TotalPrice: utils.Round2(float64(qty) * salePrice),
		SoldAt:     r.Now().UTC(),
	}
	ins, err := tx.ExecContext(ctx,
		"INSERT INTO sales (buyer_id, game_id, quantity, total_price, sold_at) VALUES (?,?,?,?,?)",
		sale.BuyerID, sale.GameID, sale.Quantity, sale.TotalPrice, sale.SoldAt)
	if err != nil {
		return model.Sale{}, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return model.Sale{}, err
	}
	sale.ID = uint64(id)

	if err := tx.Commit(); err != nil {
		return model.Sale{}, err
	}
	committed = true
	return sale, nil
}

// GetByID fetches a sale by id. ErrSaleNotFound is returned when absent.
func (r *SaleRepo) GetByID(ctx context.Context, id uint64) (model.Sale, error) {
	var s model.Sale
	err := r.db.QueryRowContext(ctx,
		"SELECT id, buyer_id, game_id, quantity, total_price, sold_at FROM sales WHERE id = ?", id).
		Scan(&s.ID, &s.BuyerID, &s.GameID, &s.Quantity, &s.TotalPrice, &s.SoldAt)
	if err == sql.ErrNoRows {
		return model.Sale{}, ErrSaleNotFound
	}
	return s, err
}

// ListByBuyer returns all sales made to one buyer, newest first.
func (r *SaleRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, buyer_id, game_id, quantity, total_price, sold_at FROM sales WHERE buyer_id = ? ORDER BY sold_at DESC, id DESC",
		buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sales := make([]model.Sale, 0)
	for rows.Next() {
		var s model.Sale
		if err := rows.Scan(&s.ID, &s.BuyerID, &s.GameID, &s.Quantity, &s.TotalPrice, &s.SoldAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// Delete removes a sale and re-credits the game's stock by the original
// quantity in the same transaction. This is a compensating write, not a
// rollback: if the stock changed for other reasons between the sale and its
// deletion, the original quantity is still blindly added back.
func (r *SaleRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var gameID uint64
	var qty int
	err = tx.QueryRowContext(ctx,
		"SELECT game_id, quantity FROM sales WHERE id = ?", id).Scan(&gameID, &qty)
	if err == sql.ErrNoRows {
		return ErrSaleNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sales WHERE id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE games SET stock = stock + ? WHERE id = ?", qty, gameID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
