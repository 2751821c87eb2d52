package model

import "time"

// Game represents a board game in the store catalog. Each copy can be sold
// outright at SalePrice or rented by the hour at HourlyPrice through the
// play-area service. Stock counts sellable copies and is only mutated by
// sale, sale reversal and restock operations.
//
// Fields:
//  ID           – primary key identifier.
//  Title        – unique game title.
//  Manufacturer – publisher name (may be empty).
//  Stock        – sellable copies on hand, never negative.
//  SalePrice    – one-time purchase price.
//  HourlyPrice  – play-session rate per elapsed hour.
//  CreatedAt    – creation timestamp.
type Game struct {
	ID           uint64    `json:"id"`            // games.id
	Title        string    `json:"title"`         // games.title
	Manufacturer string    `json:"manufacturer"`  // games.manufacturer
	Stock        int       `json:"stock"`         // games.stock
	SalePrice    float64   `json:"sale_price"`    // games.sale_price
	HourlyPrice  float64   `json:"hourly_price"`  // games.hourly_price
	CreatedAt    time.Time `json:"created_at"`    // games.created_at
}
