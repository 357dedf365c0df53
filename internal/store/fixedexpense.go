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

type fixedExpenseStore struct {
	client *firestore.Client
}

func NewFixedExpenseStore(client *firestore.Client) *fixedExpenseStore {
	return &fixedExpenseStore{client: client}
}

func (s *fixedExpenseStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("fixedExpenses")
}

func (s *fixedExpenseStore) Create(ctx context.Context, uid string, fe *models.FixedExpense) error {
	_, err := s.collection(uid).Doc(fe.FixedExpenseID).Create(ctx, fe)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create fixed expense", err)
	}
	return nil
}

func (s *fixedExpenseStore) Get(ctx context.Context, uid, id string) (*models.FixedExpense, error) {
	doc, err := s.collection(uid).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("fixed expense not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get fixed expense", err)
	}
	var fe models.FixedExpense
	if err := doc.DataTo(&fe); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse fixed expense data", err)
	}
	return &fe, nil
}

func (s *fixedExpenseStore) List(ctx context.Context, uid string) ([]models.FixedExpense, error) {
	docs, err := s.collection(uid).OrderBy("dayOfMonth", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list fixed expenses", err)
	}
	out := make([]models.FixedExpense, 0, len(docs))
	for _, d := range docs {
		var fe models.FixedExpense
		if err := d.DataTo(&fe); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse fixed expense data", err)
		}
		out = append(out, fe)
	}
	return out, nil
}

// Update replaces the template. Already-materialized transactions keep the
// values they were paid with.
func (s *fixedExpenseStore) Update(ctx context.Context, uid string, fe *models.FixedExpense) error {
	fe.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(fe.FixedExpenseID).Set(ctx, fe)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update fixed expense", err)
	}
	return nil
}

func (s *fixedExpenseStore) Delete(ctx context.Context, uid, id string) error {
	_, err := s.collection(uid).Doc(id).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete fixed expense", err)
	}
	return nil
}
