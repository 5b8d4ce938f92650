package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dionysio/spendee-go/internal/dto"
	"github.com/dionysio/spendee-go/internal/models"
	"github.com/dionysio/spendee-go/pkg/logger"
)

type walletWSStore interface {
	List(ctx context.Context, uid string) ([]*models.Wallet, error)
	Get(ctx context.Context, uid, walletID string) (*models.Wallet, error)
}

type walletTxStore interface {
	Query(ctx context.Context, uid, walletID string, q dto.TransactionQuery) ([]*models.Transaction, error)
}

type walletService struct {
	uid     string
	wallets walletWSStore
	txs     walletTxStore
}

func NewWalletService(uid string, wallets walletWSStore, txs walletTxStore) *walletService {
	return &walletService{
		uid:     uid,
		wallets: wallets,
		txs:     txs,
	}
}

// ListWallets returns the user's active wallets. Wallets in any other
// status are never surfaced.
func (s *walletService) ListWallets(ctx context.Context) ([]dto.WalletSummary, error) {
	wallets, err := s.wallets.List(ctx, s.uid)
	if err != nil {
		return nil, err
	}

	out := make([]dto.WalletSummary, 0, len(wallets))
	for _, w := range wallets {
		if w.Status != models.WalletStatusActive {
			continue
		}
		out = append(out, dto.WalletSummary{
			ID:                w.ID(),
			Name:              w.Name,
			Type:              w.Type,
			Currency:          w.Currency,
			UpdatedAt:         w.UpdatedAt,
			VisibleCategories: w.VisibleCategories,
			StartingBalance:   w.StartingBalance,
		})
	}
	return out, nil
}

// WalletBalance folds every transaction up to asOf (all of them when
// asOf is nil) into the wallet's starting balance. Financial data:
// the sum uses exact decimal arithmetic, not binary floats, and the
// result is banker's-rounded to the nearest integer unit.
func (s *walletService) WalletBalance(ctx context.Context, walletID string, asOf *time.Time) (decimal.Decimal, error) {
	wallet, err := s.wallets.Get(ctx, s.uid, walletID)
	if err != nil {
		return decimal.Zero, err
	}

	txs, err := s.txs.Query(ctx, s.uid, walletID, dto.TransactionQuery{End: asOf})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(decimal.NewFromFloat(t.Amount))
	}
	total = total.Add(decimal.NewFromFloat(wallet.StartingBalance))

	logger.FromContext(ctx).Debug("computed wallet balance",
		"wallet", walletID, "transactions", len(txs))
	return total.RoundBank(0), nil
}
