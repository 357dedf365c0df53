package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
)

type budgetBSStore interface {
	Create(ctx context.Context, uid string, b *models.Budget) error
	Get(ctx context.Context, uid, budgetID string) (*models.Budget, error)
	ListMonth(ctx context.Context, uid string, month, year int) ([]models.Budget, error)
	Update(ctx context.Context, uid string, b *models.Budget) error
	Delete(ctx context.Context, uid, budgetID string) error
}

type transactionBSStore interface {
	ListMonth(ctx context.Context, uid string, year int, month time.Month) ([]models.Transaction, error)
}

type budgetService struct {
	budgets budgetBSStore
	txs     transactionBSStore
}

func NewBudgetService(budgets budgetBSStore, txs transactionBSStore) *budgetService {
	return &budgetService{budgets: budgets, txs: txs}
}

func (s *budgetService) Create(ctx context.Context, uid string, req dto.SetBudgetRequest) (*models.Budget, error) {
	b, err := models.NewBudget(uuid.New().String(), req.Category, req.Month, req.Year, req.LimitAmount)
	if err != nil {
		return nil, err
	}
	if err := s.budgets.Create(ctx, uid, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *budgetService) UpdateLimit(ctx context.Context, uid, budgetID string, limit float64) (*models.Budget, error) {
	if limit <= 0 {
		return nil, errs.NewValidationError("limit amount must be positive")
	}
	b, err := s.budgets.Get(ctx, uid, budgetID)
	if err != nil {
		return nil, err
	}
	b.LimitAmount = limit
	if err := s.budgets.Update(ctx, uid, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListProgress returns each of the month's budgets with its spend. The bar
// percentage is capped at 100 for display width; the over-budget flag uses
// the uncapped ratio, so status text can read past the bar.
func (s *budgetService) ListProgress(ctx context.Context, uid string, month, year int) ([]dto.BudgetProgress, error) {
	if month < 1 || month > 12 {
		return nil, errs.NewValidationError("month must be between 1 and 12")
	}

	budgets, err := s.budgets.ListMonth(ctx, uid, month, year)
	if err != nil {
		return nil, err
	}
	txs, err := s.txs.ListMonth(ctx, uid, year, time.Month(month))
	if err != nil {
		return nil, err
	}

	out := make([]dto.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		var spent float64
		for i := range txs {
			t := &txs[i]
			if t.Type == models.TypeExpense && t.IsPaid && strings.EqualFold(t.Category, b.Category) {
				spent += t.Amount
			}
		}

		percent := spent / b.LimitAmount * 100
		out = append(out, dto.BudgetProgress{
			Budget:     b,
			Spent:      spent,
			BarPercent: min(percent, 100),
			OverBudget: percent > 100,
		})
	}
	return out, nil
}

func (s *budgetService) Delete(ctx context.Context, uid, budgetID string) error {
	return s.budgets.Delete(ctx, uid, budgetID)
}
