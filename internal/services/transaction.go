package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/dionysio/spendee-go/internal/dto"
	"github.com/dionysio/spendee-go/internal/errs"
	"github.com/dionysio/spendee-go/internal/filter"
	"github.com/dionysio/spendee-go/internal/models"
	"github.com/dionysio/spendee-go/pkg/logger"
)

// transactionFields is the full allowed output field set; it doubles
// as the default projection.
var transactionFields = []string{"id", "note", "madeAt", "category", "type", "isPending", "amount", "labels"}

type transactionTSStore interface {
	Query(ctx context.Context, uid, walletID string, q dto.TransactionQuery) ([]*models.Transaction, error)
	Get(ctx context.Context, uid, walletID, txID string) (*models.Transaction, error)
	ListAssignments(ctx context.Context, uid, walletID, txID string) ([]*models.LabelAssignment, error)
	ListAllAssignments(ctx context.Context, uid string) ([]*models.LabelAssignment, error)
	ApplyEdit(ctx context.Context, uid, walletID, txID string, edit dto.TransactionEdit) error
}

type nameResolver interface {
	CategoryName(id string) string
	CategoryType(id string) string
	LabelName(id string) string
	CategoryIDByName(name string) (string, bool)
	LabelIDByName(name string) (string, bool)
}

type transactionService struct {
	uid     string
	txs     transactionTSStore
	catalog nameResolver
}

func NewTransactionService(uid string, txs transactionTSStore, catalog nameResolver) *transactionService {
	return &transactionService{
		uid:     uid,
		txs:     txs,
		catalog: catalog,
	}
}

// List runs the full query pipeline: field and filter validation, a
// time-bounded store fetch ordered most-recent-first, a label join
// against the user-wide assignment scan, category name resolution,
// in-memory predicate evaluation, limit trimming (0 means unlimited)
// and field projection.
func (s *transactionService) List(ctx context.Context, args dto.TransactionListArgs) ([]dto.TransactionRecord, error) {
	fields := args.Fields
	if len(fields) == 0 {
		fields = transactionFields
	}
	for _, f := range fields {
		if !slices.Contains(transactionFields, f) {
			return nil, errs.NewInvalidFieldError(fmt.Sprintf("unknown field %q, allowed fields: %s", f, strings.Join(transactionFields, ", ")))
		}
	}
	if err := args.Filters.Validate(); err != nil {
		return nil, err
	}

	q := dto.TransactionQuery{Start: &args.Start, End: args.End, Desc: true}
	if len(args.Filters) == 0 {
		// The limit can only be pushed down when no in-memory filter
		// may drop rows afterwards.
		q.Limit = args.Limit
	}
	txs, err := s.txs.Query(ctx, s.uid, args.WalletID, q)
	if err != nil {
		return nil, err
	}

	assignments, err := s.txs.ListAllAssignments(ctx, s.uid)
	if err != nil {
		return nil, err
	}

	records := make([]dto.TransactionRecord, 0, len(txs))
	for _, t := range txs {
		record := s.buildRecord(t, s.joinLabels(assignments, t.ID()))
		ok, err := args.Filters.Matches(record)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		records = append(records, project(record, fields))
		if args.Limit > 0 && len(records) == args.Limit {
			break
		}
	}
	return records, nil
}

// Get fetches a single transaction. Unlike List, its label lookup is
// scoped to the transaction's own subcollection.
func (s *transactionService) Get(ctx context.Context, walletID, txID string, resolveCategory, resolveLabels bool) (dto.TransactionRecord, error) {
	t, err := s.txs.Get(ctx, s.uid, walletID, txID)
	if err != nil {
		return nil, err
	}

	record := dto.TransactionRecord{
		"id":        t.ID(),
		"note":      t.Note,
		"madeAt":    t.MadeAt,
		"category":  t.CategoryID,
		"type":      t.Type,
		"isPending": t.IsPending,
		"amount":    t.Amount,
	}
	if resolveCategory {
		record["category"] = s.categoryName(t.CategoryID)
	}
	if resolveLabels {
		assignments, err := s.txs.ListAssignments(ctx, s.uid, walletID, txID)
		if err != nil {
			return nil, err
		}
		record["labels"] = s.joinLabels(assignments, txID)
	}
	return record, nil
}

// Aggregate sums the amounts of all matching transactions. This path
// intentionally returns a float64 sum, unlike WalletBalance's decimal
// arithmetic.
func (s *transactionService) Aggregate(ctx context.Context, walletID string, start time.Time, end *time.Time, filters filter.Spec) (float64, error) {
	records, err := s.List(ctx, dto.TransactionListArgs{
		WalletID: walletID,
		Start:    start,
		End:      end,
		Filters:  filters,
		Limit:    0,
		Fields:   []string{"amount"},
	})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, r := range records {
		if amount, ok := r["amount"].(float64); ok {
			total += amount
		}
	}
	return total, nil
}

// Edit applies note, category and label updates against a snapshot
// taken at call start and commits them as one atomic batch.
func (s *transactionService) Edit(ctx context.Context, walletID, txID string, updates dto.TransactionUpdate) error {
	t, err := s.txs.Get(ctx, s.uid, walletID, txID)
	if err != nil {
		return err
	}

	edit := dto.TransactionEdit{Note: updates.Note}

	if updates.Category != nil {
		categoryID, err := s.resolveCategoryEdit(ctx, *updates.Category, t.Amount)
		if err != nil {
			return err
		}
		edit.CategoryID = &categoryID
	}

	if updates.Labels != nil {
		current, err := s.txs.ListAssignments(ctx, s.uid, walletID, txID)
		if err != nil {
			return err
		}
		edit.AddLabelIDs, edit.RemoveAssignmentIDs, err = s.diffLabels(*updates.Labels, current)
		if err != nil {
			return err
		}
	}

	return s.txs.ApplyEdit(ctx, s.uid, walletID, txID, edit)
}

// resolveCategoryEdit maps a category name to its id and enforces
// sign consistency: income categories require a non-negative amount,
// expense categories a non-positive one. Categories of any other type
// are logged and let through.
func (s *transactionService) resolveCategoryEdit(ctx context.Context, name string, amount float64) (string, error) {
	categoryID, ok := s.catalog.CategoryIDByName(name)
	if !ok {
		return "", errs.NewNotFoundError("category " + name + " not found")
	}

	switch s.catalog.CategoryType(categoryID) {
	case models.CategoryTypeIncome:
		if amount < 0 {
			return "", errs.NewValidationError(fmt.Sprintf("cannot assign income category %q to a transaction with negative amount %v", name, amount))
		}
	case models.CategoryTypeExpense:
		if amount > 0 {
			return "", errs.NewValidationError(fmt.Sprintf("cannot assign expense category %q to a transaction with positive amount %v", name, amount))
		}
	default:
		logger.FromContext(ctx).Warn("category has neither income nor expense type, skipping sign check",
			"category", name, "categoryId", categoryID)
	}
	return categoryID, nil
}

// diffLabels turns a "+name,-name" spec into the minimal assignment
// delta against the current join rows. Adds are idempotent; a removal
// deletes every matching assignment row, duplicates included. Labels
// are never auto-created.
func (s *transactionService) diffLabels(spec string, current []*models.LabelAssignment) (addIDs, removeIDs []string, err error) {
	assigned := make(map[string]bool, len(current))
	for _, a := range current {
		assigned[a.LabelID] = true
	}

	pendingAdd := map[string]bool{}
	pendingRemove := map[string]bool{}

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if len(token) < 2 {
			return nil, nil, errs.NewValidationError(fmt.Sprintf("label token %q is too short, expected +name or -name", token))
		}

		op, name := token[0], token[1:]
		if op != '+' && op != '-' {
			return nil, nil, errs.NewValidationError(fmt.Sprintf("label token %q must start with + or -", token))
		}
		labelID, ok := s.catalog.LabelIDByName(name)
		if !ok {
			return nil, nil, errs.NewNotFoundError("label " + name + " not found")
		}

		if op == '+' {
			if assigned[labelID] || pendingAdd[labelID] {
				continue
			}
			pendingAdd[labelID] = true
			addIDs = append(addIDs, labelID)
			continue
		}
		for _, a := range current {
			if a.LabelID == labelID && !pendingRemove[a.ID] {
				pendingRemove[a.ID] = true
				removeIDs = append(removeIDs, a.ID)
			}
		}
	}
	return addIDs, removeIDs, nil
}

func (s *transactionService) buildRecord(t *models.Transaction, labels string) dto.TransactionRecord {
	return dto.TransactionRecord{
		"id":        t.ID(),
		"note":      t.Note,
		"madeAt":    t.MadeAt,
		"category":  s.categoryName(t.CategoryID),
		"type":      t.Type,
		"isPending": t.IsPending,
		"amount":    t.Amount,
		"labels":    labels,
	}
}

// categoryName resolves a category id, passing the raw id through on a
// miss rather than failing.
func (s *transactionService) categoryName(categoryID string) string {
	if name := s.catalog.CategoryName(categoryID); name != "" {
		return name
	}
	return categoryID
}

// joinLabels serializes a transaction's label set as a comma-joined,
// alphabetically sorted string. Unknown label ids pass through as-is.
func (s *transactionService) joinLabels(assignments []*models.LabelAssignment, txID string) string {
	var names []string
	for _, a := range assignments {
		if a.TransactionID != txID {
			continue
		}
		name := s.catalog.LabelName(a.LabelID)
		if name == "" {
			name = a.LabelID
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func project(record dto.TransactionRecord, fields []string) dto.TransactionRecord {
	out := make(dto.TransactionRecord, len(fields))
	for _, f := range fields {
		out[f] = record[f]
	}
	return out
}
