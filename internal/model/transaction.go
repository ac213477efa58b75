package model

import "time"

// Transaction represents a buy or sell trade event. Transactions are
// append-only: once recorded they are never modified, and the position table
// can be rebuilt by replaying them in date order.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Symbol    string    `json:"symbol"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Fee       float64   `json:"fee"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
