package services

import (
	"context"

	"github.com/dionysio/spendee-go/internal/dto"
	"github.com/dionysio/spendee-go/internal/models"
)

type referenceRSStore interface {
	ListCategories(ctx context.Context, uid string) ([]*models.Category, error)
	ListLabels(ctx context.Context, uid string) ([]*models.Label, error)
}

type referenceService struct {
	uid  string
	refs referenceRSStore
}

func NewReferenceService(uid string, refs referenceRSStore) *referenceService {
	return &referenceService{uid: uid, refs: refs}
}

func (s *referenceService) ListCategories(ctx context.Context) ([]dto.CategorySummary, error) {
	categories, err := s.refs.ListCategories(ctx, s.uid)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CategorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategorySummary{
			ID:   c.ID(),
			Name: c.Name,
			Type: c.Type,
		})
	}
	return out, nil
}

func (s *referenceService) ListLabels(ctx context.Context) ([]dto.LabelSummary, error) {
	labels, err := s.refs.ListLabels(ctx, s.uid)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LabelSummary, 0, len(labels))
	for _, l := range labels {
		out = append(out, dto.LabelSummary{
			ID:   l.ID(),
			Name: l.Text,
		})
	}
	return out, nil
}
