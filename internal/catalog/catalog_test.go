package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dionysio/spendee-go/internal/models"
)

type fakeReferenceStore struct {
	categories []*models.Category
	labels     []*models.Label
}

func (f *fakeReferenceStore) ListCategories(_ context.Context, _ string) ([]*models.Category, error) {
	return f.categories, nil
}

func (f *fakeReferenceStore) ListLabels(_ context.Context, _ string) ([]*models.Label, error) {
	return f.labels, nil
}

func category(id, name, typ string) *models.Category {
	return &models.Category{
		Path: models.DocPath{Category: id},
		Name: name,
		Type: typ,
	}
}

func label(id, text string) *models.Label {
	return &models.Label{
		Path: models.DocPath{Label: id},
		Text: text,
	}
}

func TestLoadAndResolve(t *testing.T) {
	store := &fakeReferenceStore{
		categories: []*models.Category{
			category("c1", "Groceries", models.CategoryTypeExpense),
			category("c2", "Salary", models.CategoryTypeIncome),
		},
		labels: []*models.Label{
			label("l1", "holiday"),
			label("l2", "szigetspicc"),
		},
	}

	cat, err := Load(context.Background(), store, "user")
	require.NoError(t, err)

	assert.Equal(t, "Groceries", cat.CategoryName("c1"))
	assert.Equal(t, models.CategoryTypeExpense, cat.CategoryType("c1"))
	assert.Equal(t, models.CategoryTypeIncome, cat.CategoryType("c2"))
	assert.Equal(t, "holiday", cat.LabelName("l1"))

	id, ok := cat.CategoryIDByName("Salary")
	require.True(t, ok)
	assert.Equal(t, "c2", id)

	id, ok = cat.LabelIDByName("szigetspicc")
	require.True(t, ok)
	assert.Equal(t, "l2", id)
}

func TestUnknownIDsDegrade(t *testing.T) {
	cat, err := Load(context.Background(), &fakeReferenceStore{}, "user")
	require.NoError(t, err)

	assert.Empty(t, cat.CategoryName("missing"))
	assert.Empty(t, cat.CategoryType("missing"))
	assert.Empty(t, cat.LabelName("missing"))

	_, ok := cat.CategoryIDByName("missing")
	assert.False(t, ok)
	_, ok = cat.LabelIDByName("missing")
	assert.False(t, ok)
}

func TestDuplicateNamesFirstWins(t *testing.T) {
	store := &fakeReferenceStore{
		categories: []*models.Category{
			category("c1", "Groceries", models.CategoryTypeExpense),
			category("c2", "Groceries", models.CategoryTypeExpense),
		},
		labels: []*models.Label{
			label("l1", "holiday"),
			label("l2", "holiday"),
		},
	}

	cat, err := Load(context.Background(), store, "user")
	require.NoError(t, err)

	id, ok := cat.CategoryIDByName("Groceries")
	require.True(t, ok)
	assert.Equal(t, "c1", id)

	id, ok = cat.LabelIDByName("holiday")
	require.True(t, ok)
	assert.Equal(t, "l1", id)

	// Forward lookups keep working for both ids.
	assert.Equal(t, "Groceries", cat.CategoryName("c2"))
	assert.Equal(t, "holiday", cat.LabelName("l2"))
}
