package model

import "time"

// User identifies an account. Authentication happens upstream; this record
// only exists to scope positions, transactions, expenses and settings.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
