package models

import (
	"time"
)

const (
	TransactionTypeRegular  = "regular"
	TransactionTypeTransfer = "transfer"
)

type Transaction struct {
	Path       DocPath   `firestore:"path" json:"path"`
	MadeAt     time.Time `firestore:"madeAt" json:"madeAt"`
	Note       string    `firestore:"note" json:"note"`
	CategoryID string    `firestore:"category" json:"category"`
	Type       string    `firestore:"type" json:"type"`
	IsPending  bool      `firestore:"isPending" json:"isPending"`
	Amount     float64   `firestore:"amount" json:"amount"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func (t *Transaction) ID() string { return t.Path.Transaction }

// LabelAssignment is the join record linking one label to one
// transaction. It lives in the transaction's `labels` subcollection and
// is what the cross-wallet collection-group scan enumerates.
type LabelAssignment struct {
	ID            string    `firestore:"-" json:"id,omitempty"` // document id, assigned on read
	UserID        string    `firestore:"userId" json:"userId"`
	WalletID      string    `firestore:"walletId" json:"walletId"`
	TransactionID string    `firestore:"transactionId" json:"transactionId"`
	LabelID       string    `firestore:"labelId" json:"labelId"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}
