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

type goalStore struct {
	client *firestore.Client
}

func NewGoalStore(client *firestore.Client) *goalStore {
	return &goalStore{client: client}
}

func (s *goalStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("goals")
}

func (s *goalStore) transactions(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *goalStore) Create(ctx context.Context, uid string, g *models.Goal) error {
	_, err := s.collection(uid).Doc(g.GoalID).Create(ctx, g)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create goal", err)
	}
	return nil
}

func (s *goalStore) Get(ctx context.Context, uid, goalID string) (*models.Goal, error) {
	doc, err := s.collection(uid).Doc(goalID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("goal not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get goal", err)
	}
	var g models.Goal
	if err := doc.DataTo(&g); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse goal data", err)
	}
	return &g, nil
}

func (s *goalStore) List(ctx context.Context, uid string) ([]models.Goal, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list goals", err)
	}
	goals := make([]models.Goal, 0, len(docs))
	for _, d := range docs {
		var g models.Goal
		if err := d.DataTo(&g); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse goal data", err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (s *goalStore) Delete(ctx context.Context, uid, goalID string) error {
	_, err := s.collection(uid).Doc(goalID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete goal", err)
	}
	return nil
}

// ApplyMovement shifts a goal's balance by delta and records the paired
// ledger transaction in the same Firestore transaction. The balance guard
// runs against the freshly-read document, so concurrent withdrawals cannot
// both pass against stale data; Firestore retries the whole closure on
// contention.
func (s *goalStore) ApplyMovement(ctx context.Context, uid, goalID string, delta float64, paired *models.Transaction) error {
	goalRef := s.collection(uid).Doc(goalID)
	txRef := s.transactions(uid).Doc(paired.TransactionID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tr *firestore.Transaction) error {
		doc, err := tr.Get(goalRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("goal not found")
			}
			return err
		}
		var g models.Goal
		if err := doc.DataTo(&g); err != nil {
			return err
		}

		balance := g.CurrentAmount + delta
		if balance < 0 {
			return errs.NewInsufficientFundsError("withdrawal exceeds goal balance")
		}

		if err := tr.Update(goalRef, []firestore.Update{
			{Path: "currentAmount", Value: balance},
			{Path: "updatedAt", Value: time.Now()},
		}); err != nil {
			return err
		}
		return tr.Create(txRef, paired)
	})
	if err != nil {
		switch err.(type) {
		case *errs.NotFoundError, *errs.InsufficientFundsError:
			return err
		}
		return errs.NewDatabaseError("update", "failed to apply goal movement", err)
	}
	return nil
}
