package models

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

type Category struct {
	Path DocPath `firestore:"path" json:"path"`
	Name string  `firestore:"name" json:"name"`
	Type string  `firestore:"type" json:"type"`
}

func (c *Category) ID() string { return c.Path.Category }

// Label display names live in the `text` field upstream; the public
// surface renames it to `name` for consistency with categories.
type Label struct {
	Path DocPath `firestore:"path" json:"path"`
	Text string  `firestore:"text" json:"text"`
}

func (l *Label) ID() string { return l.Path.Label }
