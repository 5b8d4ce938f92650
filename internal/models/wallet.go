package models

import (
	"time"
)

const (
	WalletTypeCash = "cash"
	WalletTypeBank = "bank"

	// Wallets in any other status are never surfaced.
	WalletStatusActive = "active"
)

// DocPath mirrors the `path` map Spendee stores on every document,
// carrying the entity's own id alongside its ancestors.
type DocPath struct {
	User        string `firestore:"user,omitempty" json:"user,omitempty"`
	Wallet      string `firestore:"wallet,omitempty" json:"wallet,omitempty"`
	Category    string `firestore:"category,omitempty" json:"category,omitempty"`
	Label       string `firestore:"label,omitempty" json:"label,omitempty"`
	Transaction string `firestore:"transaction,omitempty" json:"transaction,omitempty"`
}

type Wallet struct {
	Path              DocPath   `firestore:"path" json:"path"`
	Name              string    `firestore:"name" json:"name"`
	Type              string    `firestore:"type" json:"type"`
	Currency          string    `firestore:"currency" json:"currency"`
	Status            string    `firestore:"status" json:"status"`
	StartingBalance   float64   `firestore:"startingBalance" json:"startingBalance"`
	VisibleCategories []string  `firestore:"visibleCategories" json:"visibleCategories,omitempty"`
	UpdatedAt         time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func (w *Wallet) ID() string { return w.Path.Wallet }
