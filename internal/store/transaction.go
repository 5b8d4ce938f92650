package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/dionysio/spendee-go/internal/dto"
	"github.com/dionysio/spendee-go/internal/models"
)

// assignmentCollection is the name of the per-transaction subcollection
// holding label-assignment join records. The cross-wallet scan below
// queries it as a collection group.
const assignmentCollection = "labels"

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection(uid, walletID string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("wallets").Doc(walletID).Collection("transactions")
}

// Query fetches transactions in the given time range, ordered by
// occurrence instant at the store level. Time bounds and ordering are
// the only predicates Firestore evaluates; everything else is filtered
// in memory by the caller.
func (s *transactionStore) Query(ctx context.Context, uid, walletID string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	query := s.collection(uid, walletID).Query
	if q.Start != nil {
		query = query.Where("madeAt", ">=", *q.Start)
	}
	if q.End != nil {
		query = query.Where("madeAt", "<=", *q.End)
	}
	dir := firestore.Asc
	if q.Desc {
		dir = firestore.Desc
	}
	query = query.OrderBy("madeAt", dir)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapErr("transactions.query", "transactions", err)
	}

	txs := make([]*models.Transaction, 0, len(docs))
	for _, d := range docs {
		var t models.Transaction
		if err := d.DataTo(&t); err != nil {
			return nil, mapErr("transactions.decode", "transaction", err)
		}
		if t.Path.Transaction == "" {
			t.Path.Transaction = d.Ref.ID
		}
		txs = append(txs, &t)
	}
	return txs, nil
}

func (s *transactionStore) Get(ctx context.Context, uid, walletID, txID string) (*models.Transaction, error) {
	doc, err := s.collection(uid, walletID).Doc(txID).Get(ctx)
	if err != nil {
		return nil, mapErr("transactions.get", "transaction "+txID, err)
	}

	var t models.Transaction
	if err := doc.DataTo(&t); err != nil {
		return nil, mapErr("transactions.decode", "transaction "+txID, err)
	}
	if t.Path.Transaction == "" {
		t.Path.Transaction = doc.Ref.ID
	}
	return &t, nil
}

// ListAssignments reads the label assignments of a single transaction
// from its own subcollection.
func (s *transactionStore) ListAssignments(ctx context.Context, uid, walletID, txID string) ([]*models.LabelAssignment, error) {
	docs, err := s.collection(uid, walletID).Doc(txID).Collection(assignmentCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapErr("assignments.list", "label assignments", err)
	}
	return decodeAssignments(docs)
}

// ListAllAssignments scans the user's entire label-assignment set
// across all wallets in one collection-group query. This is
// O(assignments for the user) per call, not O(assignments for one
// wallet); the bulk listing path depends on seeing every assignment.
func (s *transactionStore) ListAllAssignments(ctx context.Context, uid string) ([]*models.LabelAssignment, error) {
	docs, err := s.client.CollectionGroup(assignmentCollection).
		Where("userId", "==", uid).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, mapErr("assignments.scan", "label assignments", err)
	}
	return decodeAssignments(docs)
}

func decodeAssignments(docs []*firestore.DocumentSnapshot) ([]*models.LabelAssignment, error) {
	assignments := make([]*models.LabelAssignment, 0, len(docs))
	for _, d := range docs {
		var a models.LabelAssignment
		if err := d.DataTo(&a); err != nil {
			return nil, mapErr("assignments.decode", "label assignment", err)
		}
		a.ID = d.Ref.ID
		assignments = append(assignments, &a)
	}
	return assignments, nil
}

// ApplyEdit commits one edit as a single atomic batch: assignment
// inserts, assignment deletions and the field update land together or
// not at all. WriteBatch, not BulkWriter: BulkWriter offers no
// atomicity.
func (s *transactionStore) ApplyEdit(ctx context.Context, uid, walletID, txID string, edit dto.TransactionEdit) error {
	txRef := s.collection(uid, walletID).Doc(txID)
	assignments := txRef.Collection(assignmentCollection)
	batch := s.client.Batch()

	now := time.Now()
	for _, labelID := range edit.AddLabelIDs {
		batch.Set(assignments.Doc(uuid.NewString()), models.LabelAssignment{
			UserID:        uid,
			WalletID:      walletID,
			TransactionID: txID,
			LabelID:       labelID,
			CreatedAt:     now,
		})
	}
	for _, id := range edit.RemoveAssignmentIDs {
		batch.Delete(assignments.Doc(id))
	}

	updates := []firestore.Update{
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if edit.Note != nil {
		updates = append(updates, firestore.Update{Path: "note", Value: *edit.Note})
	}
	if edit.CategoryID != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *edit.CategoryID})
	}
	batch.Update(txRef, updates)

	if _, err := batch.Commit(ctx); err != nil {
		return mapErr("transactions.edit", "transaction "+txID, err)
	}
	return nil
}
