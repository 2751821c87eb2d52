package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/RichardSen18/boardgame-store/internal/model"
)

// GameRepo provides CRUD operations for the games catalog. Stock is never
// written directly through Update; it only moves through Restock and the
// sale/sale-reversal transactions in SaleRepo.
type GameRepo struct{ db *sql.DB }

// NewGameRepo returns a GameRepo bound to the given database.
func NewGameRepo(db *sql.DB) *GameRepo { return &GameRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span repositories.
func (r *GameRepo) DB() *sql.DB { return r.db }

const gameColumns = "id, title, manufacturer, stock, sale_price, hourly_price, created_at"

func scanGame(row interface{ Scan(...any) error }) (model.Game, error) {
	var g model.Game
	var manufacturer sql.NullString
	err := row.Scan(&g.ID, &g.Title, &manufacturer, &g.Stock, &g.SalePrice, &g.HourlyPrice, &g.CreatedAt)
	if err != nil {
		return model.Game{}, err
	}
	if manufacturer.Valid {
		g.Manufacturer = manufacturer.String
	}
	return g, nil
}

// Create inserts a new game and populates the generated ID. ErrTitleExists
// is returned on a duplicate title.
func (r *GameRepo) Create(ctx context.Context, g *model.Game) error {
	g.Title = strings.TrimSpace(g.Title)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO games (title, manufacturer, stock, sale_price, hourly_price) VALUES (?,?,?,?,?)",
		g.Title, g.Manufacturer, g.Stock, g.SalePrice, g.HourlyPrice)
	if err != nil {
		if isDuplicate(err) {
			return ErrTitleExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	created, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = created
	return nil
}

// GetByID fetches a game by id. ErrGameNotFound is returned when absent.
func (r *GameRepo) GetByID(ctx context.Context, id uint64) (model.Game, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+gameColumns+" FROM games WHERE id = ?", id)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return model.Game{}, ErrGameNotFound
	}
	return g, err
}

// GetByTitle fetches a game by its unique title.
func (r *GameRepo) GetByTitle(ctx context.Context, title string) (model.Game, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+gameColumns+" FROM games WHERE title = ?", strings.TrimSpace(title))
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return model.Game{}, ErrGameNotFound
	}
	return g, err
}

// List returns the whole catalog ordered by title ascending.
func (r *GameRepo) List(ctx context.Context) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+gameColumns+" FROM games ORDER BY title ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	games := make([]model.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Update rewrites the descriptive fields and prices of a game. Stock is
// deliberately untouched. ErrGameNotFound is returned when the row does not
// exist and ErrTitleExists when the new title collides.
func (r *GameRepo) Update(ctx context.Context, id uint64, title, manufacturer string, salePrice, hourlyPrice float64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE games SET title = ?, manufacturer = ?, sale_price = ?, hourly_price = ? WHERE id = ?",
		strings.TrimSpace(title), manufacturer, salePrice, hourlyPrice, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrTitleExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Zero rows can also mean an identical update; confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Restock credits qty copies back to a game, used for returns and supplier
// deliveries.
func (r *GameRepo) Restock(ctx context.Context, id uint64, qty int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE games SET stock = stock + ? WHERE id = ?", qty, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGameNotFound
	}
	return nil
}

// Delete removes a game from the catalog. Games referenced by sales or
// sessions are protected by RESTRICT foreign keys; ErrConflict is returned
// in that case.
func (r *GameRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		if isRestricted(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGameNotFound
	}
	return nil
}
