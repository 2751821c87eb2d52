package model

// Participant links a user to a play session's roster. The roster is
// append-only and not deduplicated; rows disappear only when the session
// itself is deleted (cascade).
type Participant struct {
	ID        uint64 `json:"id"`         // participants.id
	SessionID uint64 `json:"session_id"` // participants.session_id
	UserID    uint64 `json:"user_id"`    // participants.user_id
}
