package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/RichardSen18/boardgame-store/internal/model"
)

// The production schema targets MySQL, so the tests carry a SQLite mirror of
// it. Column names and constraints match; only the type spellings differ.
var testSchema = []string{
	`CREATE TABLE users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL UNIQUE,
		role          TEXT NOT NULL DEFAULT 'CLIENT',
		password_hash TEXT,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE games (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		title        TEXT NOT NULL UNIQUE,
		manufacturer TEXT,
		stock        INTEGER NOT NULL DEFAULT 0,
		sale_price   REAL NOT NULL DEFAULT 0,
		hourly_price REAL NOT NULL DEFAULT 0,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE sales (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		buyer_id    INTEGER NOT NULL REFERENCES users(id),
		game_id     INTEGER NOT NULL REFERENCES games(id),
		quantity    INTEGER NOT NULL,
		total_price REAL NOT NULL,
		sold_at     TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE rental_sessions (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id        INTEGER NOT NULL REFERENCES games(id),
		operator_id    INTEGER NOT NULL REFERENCES users(id),
		start_time     TIMESTAMP NOT NULL,
		end_time       TIMESTAMP,
		duration_hours REAL,
		total_price    REAL
	)`,
	`CREATE TABLE participants (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES rental_sessions(id) ON DELETE CASCADE,
		user_id    INTEGER NOT NULL REFERENCES users(id)
	)`,
}

// newTestDB opens a fresh in-memory SQLite database with foreign keys
// enforced. One connection only, so every statement sees the same memory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	for _, stmt := range testSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}
	return db
}

func seedGame(t *testing.T, db *sql.DB, title string, stock int, salePrice, hourlyPrice float64) model.Game {
	t.Helper()
	g := model.Game{Title: title, Manufacturer: "Test Co", Stock: stock, SalePrice: salePrice, HourlyPrice: hourlyPrice}
	if err := NewGameRepo(db).Create(context.Background(), &g); err != nil {
		t.Fatalf("seed game %q: %v", title, err)
	}
	return g
}

func seedUser(t *testing.T, db *sql.DB, name, role string) model.User {
	t.Helper()
	u, err := NewUserRepo(db).Create(context.Background(), name, role, "pw-"+name)
	if err != nil {
		t.Fatalf("seed user %q: %v", name, err)
	}
	return u
}
