package dto

import (
	"time"
)

// WalletSummary is the public shape returned by list_wallets; only
// active wallets are ever mapped into it.
type WalletSummary struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Currency          string    `json:"currency"`
	UpdatedAt         time.Time `json:"updatedAt"`
	VisibleCategories []string  `json:"visibleCategories"`
	StartingBalance   float64   `json:"startingBalance"`
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type LabelSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
