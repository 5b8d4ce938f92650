package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dionysio/spendee-go/internal/dto"
	"github.com/dionysio/spendee-go/internal/errs"
	"github.com/dionysio/spendee-go/internal/models"
	"github.com/dionysio/spendee-go/pkg/helpers"
)

type fakeWalletStore struct {
	wallets []*models.Wallet
}

func (f *fakeWalletStore) List(_ context.Context, _ string) ([]*models.Wallet, error) {
	return f.wallets, nil
}

func (f *fakeWalletStore) Get(_ context.Context, _, walletID string) (*models.Wallet, error) {
	for _, w := range f.wallets {
		if w.ID() == walletID {
			return w, nil
		}
	}
	return nil, errs.NewNotFoundError("wallet " + walletID + " not found")
}

type fakeBalanceTxStore struct {
	txs       []*models.Transaction
	lastQuery dto.TransactionQuery
}

func (f *fakeBalanceTxStore) Query(_ context.Context, _, _ string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	f.lastQuery = q
	return f.txs, nil
}

func wallet(id, status string, startingBalance float64) *models.Wallet {
	return &models.Wallet{
		Path:            models.DocPath{Wallet: id},
		Name:            "Wallet " + id,
		Type:            models.WalletTypeBank,
		Currency:        "HUF",
		Status:          status,
		StartingBalance: startingBalance,
	}
}

func TestListWalletsActiveOnly(t *testing.T) {
	store := &fakeWalletStore{wallets: []*models.Wallet{
		wallet("w1", models.WalletStatusActive, 100),
		wallet("w2", "archived", 50),
		wallet("w3", models.WalletStatusActive, 0),
	}}
	svc := NewWalletService("user", store, &fakeBalanceTxStore{})

	got, err := svc.ListWallets(helpers.TestCtx())
	if err != nil {
		t.Fatalf("ListWallets error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 active wallets, got %d", len(got))
	}
	for _, w := range got {
		if w.ID == "w2" {
			t.Fatalf("non-active wallet surfaced: %+v", w)
		}
	}
}

func TestWalletBalanceDecimalSum(t *testing.T) {
	store := &fakeWalletStore{wallets: []*models.Wallet{wallet("w1", models.WalletStatusActive, 100.1)}}
	txs := &fakeBalanceTxStore{txs: []*models.Transaction{
		{Amount: 0.1},
		{Amount: 0.2},
		{Amount: -0.15},
	}}
	svc := NewWalletService("user", store, txs)

	got, err := svc.WalletBalance(helpers.TestCtx(), "w1", nil)
	if err != nil {
		t.Fatalf("WalletBalance error: %v", err)
	}
	// 100.1 + 0.1 + 0.2 - 0.15 = 100.25 exactly; floats would drift.
	if got.String() != "100" {
		t.Fatalf("balance mismatch: got %s", got.String())
	}
	if txs.lastQuery.End != nil || txs.lastQuery.Start != nil {
		t.Fatalf("expected an unbounded query, got %+v", txs.lastQuery)
	}
}

func TestWalletBalanceBankersRounding(t *testing.T) {
	store := &fakeWalletStore{wallets: []*models.Wallet{wallet("w1", models.WalletStatusActive, 0)}}

	tests := []struct {
		amounts []float64
		want    string
	}{
		{[]float64{0.25, 0.25}, "0"}, // 0.5 rounds to even
		{[]float64{0.75, 0.75}, "2"}, // 1.5 rounds to even
		{[]float64{0.3, 0.3}, "1"},
	}
	for _, tc := range tests {
		txs := make([]*models.Transaction, 0, len(tc.amounts))
		for _, a := range tc.amounts {
			txs = append(txs, &models.Transaction{Amount: a})
		}
		svc := NewWalletService("user", store, &fakeBalanceTxStore{txs: txs})

		got, err := svc.WalletBalance(helpers.TestCtx(), "w1", nil)
		if err != nil {
			t.Fatalf("WalletBalance error: %v", err)
		}
		if got.String() != tc.want {
			t.Fatalf("amounts %v: got %s, want %s", tc.amounts, got.String(), tc.want)
		}
	}
}

func TestWalletBalanceCutoffPassedToStore(t *testing.T) {
	store := &fakeWalletStore{wallets: []*models.Wallet{wallet("w1", models.WalletStatusActive, 0)}}
	txs := &fakeBalanceTxStore{}
	svc := NewWalletService("user", store, txs)

	asOf := time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)
	if _, err := svc.WalletBalance(helpers.TestCtx(), "w1", &asOf); err != nil {
		t.Fatalf("WalletBalance error: %v", err)
	}
	if txs.lastQuery.End == nil || !txs.lastQuery.End.Equal(asOf) {
		t.Fatalf("cutoff not pushed to store: %+v", txs.lastQuery)
	}
}

func TestWalletBalanceUnknownWallet(t *testing.T) {
	svc := NewWalletService("user", &fakeWalletStore{}, &fakeBalanceTxStore{})

	_, err := svc.WalletBalance(helpers.TestCtx(), "missing", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var notFound *errs.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
}
