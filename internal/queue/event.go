// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Queue names. Both queues are durable.
const (
	SaleRecordedQueue  = "sale.recorded"
	SessionClosedQueue = "session.closed"
)

// SaleRecordedEvent is published after a sale transaction commits. It
// carries enough for downstream consumers to log or aggregate without
// querying the primary database.
type SaleRecordedEvent struct {
	SaleID     uint64  `json:"sale_id"`
	BuyerID    uint64  `json:"buyer_id"`
	GameID     uint64  `json:"game_id"`
	GameTitle  string  `json:"game_title"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	SoldAt     string  `json:"sold_at"`
}

// SessionClosedEvent is published after a play session is finalized.
type SessionClosedEvent struct {
	SessionID     uint64  `json:"session_id"`
	GameID        uint64  `json:"game_id"`
	GameTitle     string  `json:"game_title"`
	OperatorID    uint64  `json:"operator_id"`
	DurationHours float64 `json:"duration_hours"`
	TotalPrice    float64 `json:"total_price"`
	ClosedAt      string  `json:"closed_at"`
}
