package repository

import (
	"context"
	"database/sql"

	"github.com/RichardSen18/boardgame-store/internal/model"
)

// ParticipantRepo keeps the append-only roster of who took part in each
// play session. Entries are never updated; they are removed only through
// the session's cascading delete.
type ParticipantRepo struct{ db *sql.DB }

// NewParticipantRepo returns a ParticipantRepo bound to the given database.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo { return &ParticipantRepo{db: db} }

// Register appends a user to a session's roster. The session must exist
// (ErrSessionNotFound) and the user must exist (ErrUserNotFound); the
// session's state is deliberately not checked, so joining an already-closed
// session is permitted. Duplicates are not prevented.
func (r *ParticipantRepo) Register(ctx context.Context, sessionID, userID uint64) (model.Participant, error) {
	var exists uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM rental_sessions WHERE id = ?", sessionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return model.Participant{}, ErrSessionNotFound
	}
	if err != nil {
		return model.Participant{}, err
	}
	err = r.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE id = ?", userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return model.Participant{}, ErrUserNotFound
	}
	if err != nil {
		return model.Participant{}, err
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO participants (session_id, user_id) VALUES (?,?)", sessionID, userID)
	if err != nil {
		return model.Participant{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Participant{}, err
	}
	return model.Participant{ID: uint64(id), SessionID: sessionID, UserID: userID}, nil
}

// ListBySession returns the user ids on a session's roster in insertion
// order, duplicates included.
func (r *ParticipantRepo) ListBySession(ctx context.Context, sessionID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id FROM participants WHERE session_id = ? ORDER BY id ASC", sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var uid uint64
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		ids = append(ids, uid)
	}
	return ids, rows.Err()
}
