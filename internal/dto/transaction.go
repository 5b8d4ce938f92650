package dto

import (
	"time"

	"github.com/dionysio/spendee-go/internal/filter"
)

// TransactionRecord is a projected listing row. Keys are restricted to
// the allowed output fields; values are already resolved (category as
// name, labels as a sorted comma-joined string).
type TransactionRecord map[string]any

type TransactionListArgs struct {
	WalletID string
	Start    time.Time
	End      *time.Time
	Filters  filter.Spec
	Limit    int
	Fields   []string
}

type TransactionUpdate struct {
	Note     *string
	Category *string
	Labels   *string
}

// TransactionQuery is the store-level range query: time bounds and
// ordering are the only predicates ever pushed down to Firestore.
type TransactionQuery struct {
	Start *time.Time
	End   *time.Time
	Desc  bool
	Limit int
}

// TransactionEdit is the resolved, validated outcome of an edit call,
// committed by the store as one atomic batch.
type TransactionEdit struct {
	Note                *string
	CategoryID          *string
	AddLabelIDs         []string
	RemoveAssignmentIDs []string
}
