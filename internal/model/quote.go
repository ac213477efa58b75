package model

import "time"

// QuoteConfig holds the optional market-data provider settings. APIToken is
// stored fernet-encrypted at rest and only decrypted when a quote request is
// made.
type QuoteConfig struct {
	ID        string    `json:"id"`
	APIToken  string    `json:"-"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
