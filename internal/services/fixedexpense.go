package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/helpers"
)

type fixedExpenseFSStore interface {
	Create(ctx context.Context, uid string, fe *models.FixedExpense) error
	Get(ctx context.Context, uid, id string) (*models.FixedExpense, error)
	List(ctx context.Context, uid string) ([]models.FixedExpense, error)
	Update(ctx context.Context, uid string, fe *models.FixedExpense) error
	Delete(ctx context.Context, uid, id string) error
}

type fixedExpenseService struct {
	store fixedExpenseFSStore
}

func NewFixedExpenseService(store fixedExpenseFSStore) *fixedExpenseService {
	return &fixedExpenseService{store: store}
}

func (s *fixedExpenseService) Create(ctx context.Context, uid string, req dto.CreateFixedExpenseRequest) (*models.FixedExpense, error) {
	fe, err := models.NewFixedExpense(uuid.New().String(), req.Description, req.Amount, req.Category, req.DayOfMonth)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, uid, fe); err != nil {
		return nil, err
	}
	return fe, nil
}

func (s *fixedExpenseService) List(ctx context.Context, uid string) ([]models.FixedExpense, error) {
	return s.store.List(ctx, uid)
}

// Update edits the template only. Transactions already materialized from it
// keep the values they were confirmed with.
func (s *fixedExpenseService) Update(ctx context.Context, uid, id string, req dto.UpdateFixedExpenseRequest) (*models.FixedExpense, error) {
	fe, err := s.store.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if *req.Description == "" {
			return nil, errs.NewValidationError("description is required")
		}
		fe.Description = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, errs.NewValidationError("amount must be positive")
		}
		fe.Amount = *req.Amount
	}
	fe.Category = helpers.ValueOr(req.Category, fe.Category)
	if req.DayOfMonth != nil {
		if *req.DayOfMonth < 1 || *req.DayOfMonth > 31 {
			return nil, errs.NewValidationError("day of month must be between 1 and 31")
		}
		fe.DayOfMonth = *req.DayOfMonth
	}

	if err := s.store.Update(ctx, uid, fe); err != nil {
		return nil, err
	}
	return fe, nil
}

func (s *fixedExpenseService) Delete(ctx context.Context, uid, id string) error {
	return s.store.Delete(ctx, uid, id)
}
