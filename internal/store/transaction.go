package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

// monthRange returns the inclusive date bounds of a calendar month at the
// noon-UTC normalization used by all stored dates.
func monthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func (s *transactionStore) Create(ctx context.Context, uid string, t *models.Transaction) error {
	_, err := s.collection(uid).Doc(t.TransactionID).Create(ctx, t)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("transaction already exists")
		}
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

// CreateBatch writes every transaction or none. Installment expansion
// depends on this: a purchase must never end up with a subset of its
// installments persisted.
func (s *transactionStore) CreateBatch(ctx context.Context, uid string, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	coll := s.collection(uid)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tr *firestore.Transaction) error {
		for i := range txs {
			if err := tr.Create(coll.Doc(txs[i].TransactionID), txs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction batch", err)
	}
	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, txID string) (*models.Transaction, error) {
	doc, err := s.collection(uid).Doc(txID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}
	var t models.Transaction
	if err := doc.DataTo(&t); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return &t, nil
}

func (s *transactionStore) Update(ctx context.Context, uid string, t *models.Transaction) error {
	t.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(t.TransactionID).Set(ctx, t)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	return nil
}

func (s *transactionStore) Delete(ctx context.Context, uid, txID string) error {
	_, err := s.collection(uid).Doc(txID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}

func (s *transactionStore) ListMonth(ctx context.Context, uid string, year int, month time.Month) ([]models.Transaction, error) {
	first, last := monthRange(year, month)
	docs, err := s.collection(uid).
		Where("date", ">=", first).
		Where("date", "<=", last).
		OrderBy("date", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list month transactions", err)
	}
	return decodeTransactions(docs)
}

func (s *transactionStore) ListByGroup(ctx context.Context, uid, groupID string) ([]models.Transaction, error) {
	docs, err := s.collection(uid).
		Where("installmentGroupId", "==", groupID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list installment group", err)
	}
	return decodeTransactions(docs)
}

// UpdateGroup rewrites every member of an installment group in one
// transaction. perDoc receives the decoded member and returns the field
// updates for it, letting callers vary per-member values such as the
// numbered description suffix.
func (s *transactionStore) UpdateGroup(ctx context.Context, uid, groupID string, perDoc func(t *models.Transaction) []firestore.Update) error {
	query := s.collection(uid).Where("installmentGroupId", "==", groupID)
	now := time.Now()

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tr *firestore.Transaction) error {
		docs, err := tr.Documents(query).GetAll()
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return errs.NewNotFoundError("installment group not found")
		}
		for _, d := range docs {
			var member models.Transaction
			if err := d.DataTo(&member); err != nil {
				return err
			}
			updates := append(perDoc(&member), firestore.Update{Path: "updatedAt", Value: now})
			if err := tr.Update(d.Ref, updates); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*errs.NotFoundError); ok {
			return err
		}
		return errs.NewDatabaseError("update", "failed to update installment group", err)
	}
	return nil
}

// DeleteGroup removes every member of an installment group in one
// transaction; either the whole purchase disappears or none of it does.
func (s *transactionStore) DeleteGroup(ctx context.Context, uid, groupID string) error {
	query := s.collection(uid).Where("installmentGroupId", "==", groupID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tr *firestore.Transaction) error {
		docs, err := tr.Documents(query).GetAll()
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return errs.NewNotFoundError("installment group not found")
		}
		for _, d := range docs {
			if err := tr.Delete(d.Ref); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*errs.NotFoundError); ok {
			return err
		}
		return errs.NewDatabaseError("delete", "failed to delete installment group", err)
	}
	return nil
}

func decodeTransactions(docs []*firestore.DocumentSnapshot) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0, len(docs))
	for _, d := range docs {
		var t models.Transaction
		if err := d.DataTo(&t); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}
