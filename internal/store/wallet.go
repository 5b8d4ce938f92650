package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/dionysio/spendee-go/internal/models"
)

type walletStore struct {
	client *firestore.Client
}

func NewWalletStore(client *firestore.Client) *walletStore {
	return &walletStore{client: client}
}

func (s *walletStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("wallets")
}

func (s *walletStore) List(ctx context.Context, uid string) ([]*models.Wallet, error) {
	docs, err := s.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapErr("wallets.list", "wallets", err)
	}

	wallets := make([]*models.Wallet, 0, len(docs))
	for _, d := range docs {
		var w models.Wallet
		if err := d.DataTo(&w); err != nil {
			return nil, mapErr("wallets.decode", "wallet", err)
		}
		if w.Path.Wallet == "" {
			w.Path.Wallet = d.Ref.ID
		}
		wallets = append(wallets, &w)
	}
	return wallets, nil
}

func (s *walletStore) Get(ctx context.Context, uid, walletID string) (*models.Wallet, error) {
	doc, err := s.collection(uid).Doc(walletID).Get(ctx)
	if err != nil {
		return nil, mapErr("wallets.get", "wallet "+walletID, err)
	}

	var w models.Wallet
	if err := doc.DataTo(&w); err != nil {
		return nil, mapErr("wallets.decode", "wallet "+walletID, err)
	}
	if w.Path.Wallet == "" {
		w.Path.Wallet = doc.Ref.ID
	}
	return &w, nil
}
