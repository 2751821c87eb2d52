package model

import "time"

// Session represents a timed occupancy of a game in the play area, billed
// by elapsed hours at the game's hourly rate. A session is Open until it is
// finalized; EndTime, DurationHours and TotalPrice are all nil while Open
// and all set together exactly once when the session closes. Closed is
// terminal.
//
// Fields:
//  ID            – primary key identifier.
//  GameID        – game being played.
//  OperatorID    – staff member who opened the session.
//  StartTime     – when the session was opened (UTC).
//  EndTime       – when it was finalized, nil while open.
//  DurationHours – elapsed hours rounded half-up to 2 decimals.
//  TotalPrice    – DurationHours times the game's hourly rate, rounded.
type Session struct {
	ID            uint64     `json:"id"`             // rental_sessions.id
	GameID        uint64     `json:"game_id"`        // rental_sessions.game_id
	OperatorID    uint64     `json:"operator_id"`    // rental_sessions.operator_id
	StartTime     time.Time  `json:"start_time"`     // rental_sessions.start_time
	EndTime       *time.Time `json:"end_time"`       // rental_sessions.end_time (nullable)
	DurationHours *float64   `json:"duration_hours"` // rental_sessions.duration_hours (nullable)
	TotalPrice    *float64   `json:"total_price"`    // rental_sessions.total_price (nullable)
}

// Open reports whether the session has not been finalized yet.
func (s *Session) Open() bool { return s.EndTime == nil }
