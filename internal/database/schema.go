package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates the five store tables. Foreign keys RESTRICT
// deletes of referenced games and users; only participants cascade with
// their session. All statements are idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(255) NOT NULL UNIQUE,
		role          VARCHAR(50) NOT NULL DEFAULT 'CLIENT',
		password_hash VARCHAR(64) NULL,
		created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS games (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title        VARCHAR(255) NOT NULL UNIQUE,
		manufacturer VARCHAR(255) NULL,
		stock        INT NOT NULL DEFAULT 0,
		sale_price   DECIMAL(10,2) NOT NULL,
		hourly_price DECIMAL(10,2) NOT NULL,
		created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS sales (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		buyer_id    BIGINT UNSIGNED NOT NULL,
		game_id     BIGINT UNSIGNED NOT NULL,
		quantity    INT NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		sold_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (buyer_id) REFERENCES users(id) ON DELETE RESTRICT,
		FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE RESTRICT
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS rental_sessions (
		id             BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		game_id        BIGINT UNSIGNED NOT NULL,
		operator_id    BIGINT UNSIGNED NOT NULL,
		start_time     TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		end_time       TIMESTAMP NULL,
		duration_hours DECIMAL(5,2) NULL,
		total_price    DECIMAL(10,2) NULL,
		FOREIGN KEY (game_id) REFERENCES games(id) ON DELETE RESTRICT,
		FOREIGN KEY (operator_id) REFERENCES users(id) ON DELETE RESTRICT
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS participants (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		session_id BIGINT UNSIGNED NOT NULL,
		user_id    BIGINT UNSIGNED NOT NULL,
		FOREIGN KEY (session_id) REFERENCES rental_sessions(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE RESTRICT
	) ENGINE=InnoDB`,
}

// EnsureSchema creates any missing tables. It runs once at startup so the
// service can be pointed at an empty database.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
