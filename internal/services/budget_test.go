package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/helpers"
)

type fakeBudgetStore struct {
	budgets map[string]*models.Budget
	err     error
}

func (f *fakeBudgetStore) Create(_ context.Context, _ string, b *models.Budget) error {
	if f.budgets == nil {
		f.budgets = map[string]*models.Budget{}
	}
	f.budgets[b.BudgetID] = b
	return f.err
}

func (f *fakeBudgetStore) Get(_ context.Context, _ string, budgetID string) (*models.Budget, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.budgets[budgetID]
	if !ok {
		return nil, errs.NewNotFoundError("budget not found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBudgetStore) ListMonth(_ context.Context, _ string, month, year int) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range f.budgets {
		if b.Month == month && b.Year == year {
			out = append(out, *b)
		}
	}
	return out, f.err
}

func (f *fakeBudgetStore) Update(_ context.Context, _ string, b *models.Budget) error {
	f.budgets[b.BudgetID] = b
	return f.err
}

func (f *fakeBudgetStore) Delete(_ context.Context, _ string, budgetID string) error {
	delete(f.budgets, budgetID)
	return f.err
}

type fakeMonthLister struct {
	txs []models.Transaction
	err error
}

func (f *fakeMonthLister) ListMonth(_ context.Context, _ string, _ int, _ time.Month) ([]models.Transaction, error) {
	return f.txs, f.err
}

func budgetFixture(category string, limit float64) *fakeBudgetStore {
	return &fakeBudgetStore{budgets: map[string]*models.Budget{
		"b1": {BudgetID: "b1", Category: category, Month: 3, Year: 2025, LimitAmount: limit},
	}}
}

func expense(category string, amount float64, paid bool) models.Transaction {
	return models.Transaction{
		Type:     models.TypeExpense,
		Category: category,
		Amount:   amount,
		IsPaid:   paid,
		Date:     date(2025, time.March, 10),
	}
}

func TestBudgetListProgress(t *testing.T) {
	txs := &fakeMonthLister{txs: []models.Transaction{
		expense("Alimentação", 300, true),
		expense("Alimentação", 200, true),
		expense("Transporte", 999, true),
	}}
	svc := NewBudgetService(budgetFixture("Alimentação", 1000), txs)

	out, err := svc.ListProgress(helpers.TestCtx(), "uid", 3, 2025)
	if err != nil {
		t.Fatalf("ListProgress returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d budgets, want 1", len(out))
	}
	if out[0].Spent != 500 {
		t.Fatalf("spent = %v, want 500 (other categories excluded)", out[0].Spent)
	}
	if out[0].BarPercent != 50 || out[0].OverBudget {
		t.Fatalf("progress wrong: %+v", out[0])
	}
}

func TestBudgetProgressSkipsUnpaidAndIncome(t *testing.T) {
	income := models.Transaction{
		Type: models.TypeIncome, Category: "Alimentação", Amount: 400, IsPaid: true,
		Date: date(2025, time.March, 1),
	}
	txs := &fakeMonthLister{txs: []models.Transaction{
		expense("Alimentação", 300, true),
		expense("Alimentação", 200, false), // unpaid projection or pending entry
		income,
	}}
	svc := NewBudgetService(budgetFixture("Alimentação", 1000), txs)

	out, err := svc.ListProgress(helpers.TestCtx(), "uid", 3, 2025)
	if err != nil {
		t.Fatalf("ListProgress returned error: %v", err)
	}
	if out[0].Spent != 300 {
		t.Fatalf("spent = %v, want 300 (unpaid and income excluded)", out[0].Spent)
	}
}

func TestBudgetProgressCategoryMatchIsCaseInsensitive(t *testing.T) {
	txs := &fakeMonthLister{txs: []models.Transaction{expense("alimentação", 100, true)}}
	svc := NewBudgetService(budgetFixture("Alimentação", 1000), txs)

	out, err := svc.ListProgress(helpers.TestCtx(), "uid", 3, 2025)
	if err != nil {
		t.Fatalf("ListProgress returned error: %v", err)
	}
	if out[0].Spent != 100 {
		t.Fatalf("spent = %v, want 100", out[0].Spent)
	}
}

func TestBudgetProgressOverBudgetClampsBar(t *testing.T) {
	txs := &fakeMonthLister{txs: []models.Transaction{expense("Lazer", 1500, true)}}
	svc := NewBudgetService(budgetFixture("Lazer", 1000), txs)

	out, err := svc.ListProgress(helpers.TestCtx(), "uid", 3, 2025)
	if err != nil {
		t.Fatalf("ListProgress returned error: %v", err)
	}
	if out[0].BarPercent != 100 {
		t.Fatalf("bar percent = %v, want clamped 100", out[0].BarPercent)
	}
	if !out[0].OverBudget {
		t.Fatalf("over-budget flag must use the unclamped ratio")
	}
}

func TestBudgetProgressInvalidMonth(t *testing.T) {
	svc := NewBudgetService(&fakeBudgetStore{}, &fakeMonthLister{})

	_, err := svc.ListProgress(helpers.TestCtx(), "uid", 0, 2025)
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBudgetUpdateLimit(t *testing.T) {
	store := budgetFixture("Lazer", 1000)
	svc := NewBudgetService(store, &fakeMonthLister{})

	b, err := svc.UpdateLimit(helpers.TestCtx(), "uid", "b1", 800)
	if err != nil {
		t.Fatalf("UpdateLimit returned error: %v", err)
	}
	if b.LimitAmount != 800 {
		t.Fatalf("limit = %v, want 800", b.LimitAmount)
	}

	var verr *errs.ValidationError
	if _, err := svc.UpdateLimit(helpers.TestCtx(), "uid", "b1", 0); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for zero limit, got %v", err)
	}
}
