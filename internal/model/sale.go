package model

import "time"

// Sale is an immutable record of a quantity of one game sold to a buyer.
// TotalPrice is fixed at quantity times the game's sale price at the moment
// of the sale; later price changes do not touch existing rows. Deleting a
// sale re-credits the game's stock by the original quantity.
type Sale struct {
	ID         uint64    `json:"id"`          // sales.id
	BuyerID    uint64    `json:"buyer_id"`    // sales.buyer_id
	GameID     uint64    `json:"game_id"`     // sales.game_id
	Quantity   int       `json:"quantity"`    // sales.quantity
	TotalPrice float64   `json:"total_price"` // sales.total_price
	SoldAt     time.Time `json:"sold_at"`     // sales.sold_at
}
