package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/RichardSen18/boardgame-store/internal/model"
	"github.com/RichardSen18/boardgame-store/internal/utils"
)

// SessionRepo manages the lifecycle of play sessions: Open on start, Closed
// after Finalize. Finalize is the only mutation a session ever receives and
// it happens at most once.
type SessionRepo struct {
	db *sql.DB

	// Now supplies the start and end timestamps. Overridable in tests so
	// duration arithmetic is exactly checkable.
	Now func() time.Time
}

// NewSessionRepo returns a SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db, Now: time.Now}
}

const sessionColumns = "id, game_id, operator_id, start_time, end_time, duration_hours, total_price"

func scanSession(row interface{ Scan(...any) error }) (model.Session, error) {
	var s model.Session
	var end sql.NullTime
	var duration, price sql.NullFloat64
	err := row.Scan(&s.ID, &s.GameID, &s.OperatorID, &s.StartTime, &end, &duration, &price)
	if err != nil {
		return model.Session{}, err
	}
	if end.Valid {
		t := end.Time
		s.EndTime = &t
	}
	if duration.Valid {
		d := duration.Float64
		s.DurationHours = &d
	}
	if price.Valid {
		p := price.Float64
		s.TotalPrice = &p
	}
	return s, nil
}

// Start opens a new session for a game, stamping the current UTC time as
// its start. The game must exist; ErrGameNotFound is returned otherwise.
func (r *SessionRepo) Start(ctx context.Context, gameID, operatorID uint64) (model.Session, error) {
	var exists uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM games WHERE id = ?", gameID).Scan(&exists)
	if err == sql.ErrNoRows {
		return model.Session{}, ErrGameNotFound
	}
	if err != nil {
		return model.Session{}, err
	}

	start := r.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rental_sessions (game_id, operator_id, start_time) VALUES (?,?,?)",
		gameID, operatorID, start)
	if err != nil {
		return model.Session{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{
		ID:         uint64(id),
		GameID:     gameID,
		OperatorID: operatorID,
		StartTime:  start,
	}, nil
}

// GetByID fetches a session by id. ErrSessionNotFound is returned when
// absent.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (model.Session, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM rental_sessions WHERE id = ?", id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return model.Session{}, ErrSessionNotFound
	}
	return s, err
}

// List returns every session regardless of state, ordered by start time
// ascending with id as tiebreaker. The order is an explicit choice of this
// layer, not storage-defined.
func (r *SessionRepo) List(ctx context.Context) ([]model.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM rental_sessions ORDER BY start_time ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]model.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Finalize closes an open session: it stamps the end time, derives the
// elapsed duration in hours and the total price from the game's hourly
// rate (both rounded half-up to two decimals), and persists all three in
// one atomic update. The update is guarded by `end_time IS NULL`, so a
// second call, even a concurrent one, matches zero rows and reports
// ErrSessionClosed. ErrGameNotFound is returned when the game has since
// been removed from the catalog.
func (r *SessionRepo) Finalize(ctx context.Context, id uint64) (model.Session, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Session{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM rental_sessions WHERE id = ?", id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return model.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, err
	}
	if !s.Open() {
		return model.Session{}, ErrSessionClosed
	}

	var hourlyRate float64
	err = tx.QueryRowContext(ctx,
		"SELECT hourly_price FROM games WHERE id = ?", s.GameID).Scan(&hourlyRate)
	if err == sql.ErrNoRows {
		return model.Session{}, ErrGameNotFound
	}
	if err != nil {
		return model.Session{}, err
	}

	end := r.Now().UTC()
	duration := utils.Round2(end.Sub(s.StartTime).Seconds() / 3600)
	price := utils.Round2(duration * hourlyRate)

	res, err := tx.ExecContext(ctx,
		"UPDATE rental_sessions SET end_time = ?, duration_hours = ?, total_price = ? WHERE id = ? AND end_time IS NULL",
		end, duration, price, id)
	if err != nil {
		return model.Session{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Session{}, err
	}
	if n == 0 {
		return model.Session{}, ErrSessionClosed
	}

	if err := tx.Commit(); err != nil {
		return model.Session{}, err
	}
	committed = true

	s.EndTime = &end
	s.DurationHours = &duration
	s.TotalPrice = &price
	return s, nil
}

// Delete removes a session; participant rows cascade away with it.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rental_sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
