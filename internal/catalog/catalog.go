// Package catalog resolves opaque category and label ids to their
// display names and back. The reference sets are small, so both
// collections are loaded eagerly once per session and the maps are
// immutable afterwards; concurrent reads need no locking.
package catalog

import (
	"context"

	"github.com/dionysio/spendee-go/internal/models"
)

type referenceStore interface {
	ListCategories(ctx context.Context, uid string) ([]*models.Category, error)
	ListLabels(ctx context.Context, uid string) ([]*models.Label, error)
}

type Catalog struct {
	categoryNameByID map[string]string
	categoryTypeByID map[string]string
	categoryIDByName map[string]string
	labelNameByID    map[string]string
	labelIDByName    map[string]string
}

// Load enumerates both reference collections in full. Duplicate names
// are neither deduplicated nor rejected; the first one loaded wins on
// reverse lookup.
func Load(ctx context.Context, store referenceStore, uid string) (*Catalog, error) {
	categories, err := store.ListCategories(ctx, uid)
	if err != nil {
		return nil, err
	}
	labels, err := store.ListLabels(ctx, uid)
	if err != nil {
		return nil, err
	}
	return build(categories, labels), nil
}

func build(categories []*models.Category, labels []*models.Label) *Catalog {
	c := &Catalog{
		categoryNameByID: make(map[string]string, len(categories)),
		categoryTypeByID: make(map[string]string, len(categories)),
		categoryIDByName: make(map[string]string, len(categories)),
		labelNameByID:    make(map[string]string, len(labels)),
		labelIDByName:    make(map[string]string, len(labels)),
	}

	for _, cat := range categories {
		id := cat.ID()
		c.categoryNameByID[id] = cat.Name
		c.categoryTypeByID[id] = cat.Type
		if _, ok := c.categoryIDByName[cat.Name]; !ok {
			c.categoryIDByName[cat.Name] = id
		}
	}
	for _, label := range labels {
		id := label.ID()
		c.labelNameByID[id] = label.Text
		if _, ok := c.labelIDByName[label.Text]; !ok {
			c.labelIDByName[label.Text] = id
		}
	}
	return c
}

// CategoryName returns the display name for a category id, or "" when
// the id is unknown. Misses degrade, they never error.
func (c *Catalog) CategoryName(id string) string {
	return c.categoryNameByID[id]
}

// CategoryType returns "income", "expense" or "" for unknown ids.
func (c *Catalog) CategoryType(id string) string {
	return c.categoryTypeByID[id]
}

func (c *Catalog) LabelName(id string) string {
	return c.labelNameByID[id]
}

func (c *Catalog) CategoryIDByName(name string) (string, bool) {
	id, ok := c.categoryIDByName[name]
	return id, ok
}

func (c *Catalog) LabelIDByName(name string) (string, bool) {
	id, ok := c.labelIDByName[name]
	return id, ok
}
