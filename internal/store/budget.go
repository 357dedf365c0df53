package store

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
)

type budgetStore struct {
	client *firestore.Client
}

func NewBudgetStore(client *firestore.Client) *budgetStore {
	return &budgetStore{client: client}
}

func (s *budgetStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("budgets")
}

// Create enforces the one-budget-per-(category, month, year) rule inside
// the writing transaction.
func (s *budgetStore) Create(ctx context.Context, uid string, b *models.Budget) error {
	coll := s.collection(uid)
	dup := coll.
		Where("month", "==", b.Month).
		Where("year", "==", b.Year)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tr *firestore.Transaction) error {
		docs, err := tr.Documents(dup).GetAll()
		if err != nil {
			return err
		}
		for _, d := range docs {
			var existing models.Budget
			if err := d.DataTo(&existing); err != nil {
				return err
			}
			if strings.EqualFold(existing.Category, b.Category) {
				return errs.NewAlreadyExistsError("budget already exists for this category and month")
			}
		}
		return tr.Create(coll.Doc(b.BudgetID), b)
	})
	if err != nil {
		if _, ok := err.(*errs.AlreadyExistsError); ok {
			return err
		}
		return errs.NewDatabaseError("create", "failed to create budget", err)
	}
	return nil
}

func (s *budgetStore) Get(ctx context.Context, uid, budgetID string) (*models.Budget, error) {
	doc, err := s.collection(uid).Doc(budgetID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("budget not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get budget", err)
	}
	var b models.Budget
	if err := doc.DataTo(&b); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse budget data", err)
	}
	return &b, nil
}

func (s *budgetStore) ListMonth(ctx context.Context, uid string, month, year int) ([]models.Budget, error) {
	docs, err := s.collection(uid).
		Where("month", "==", month).
		Where("year", "==", year).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list budgets", err)
	}
	budgets := make([]models.Budget, 0, len(docs))
	for _, d := range docs {
		var b models.Budget
		if err := d.DataTo(&b); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse budget data", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func (s *budgetStore) Update(ctx context.Context, uid string, b *models.Budget) error {
	b.UpdatedAt = time.Now()
	_, err := s.collection(uid).Doc(b.BudgetID).Set(ctx, b)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update budget", err)
	}
	return nil
}

func (s *budgetStore) Delete(ctx context.Context, uid, budgetID string) error {
	_, err := s.collection(uid).Doc(budgetID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete budget", err)
	}
	return nil
}
