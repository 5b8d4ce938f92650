package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/dionysio/spendee-go/internal/models"
)

// referenceStore enumerates the two reference collections. Both are
// assumed small enough to load in full, without pagination.
type referenceStore struct {
	client *firestore.Client
}

func NewReferenceStore(client *firestore.Client) *referenceStore {
	return &referenceStore{client: client}
}

func (s *referenceStore) ListCategories(ctx context.Context, uid string) ([]*models.Category, error) {
	docs, err := s.client.Collection("users").Doc(uid).Collection("categories").Documents(ctx).GetAll()
	if err != nil {
		return nil, mapErr("categories.list", "categories", err)
	}

	categories := make([]*models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, mapErr("categories.decode", "category", err)
		}
		if c.Path.Category == "" {
			c.Path.Category = d.Ref.ID
		}
		categories = append(categories, &c)
	}
	return categories, nil
}

func (s *referenceStore) ListLabels(ctx context.Context, uid string) ([]*models.Label, error) {
	docs, err := s.client.Collection("users").Doc(uid).Collection("labels").Documents(ctx).GetAll()
	if err != nil {
		return nil, mapErr("labels.list", "labels", err)
	}

	labels := make([]*models.Label, 0, len(docs))
	for _, d := range docs {
		var l models.Label
		if err := d.DataTo(&l); err != nil {
			return nil, mapErr("labels.decode", "label", err)
		}
		if l.Path.Label == "" {
			l.Path.Label = d.Ref.ID
		}
		labels = append(labels, &l)
	}
	return labels, nil
}
