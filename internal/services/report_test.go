package services

import (
	"context"
	"testing"
	"time"

	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/helpers"
)

type fakeLedgerProvider struct {
	txs []models.Transaction
	err error
}

func (f *fakeLedgerProvider) MonthLedger(_ context.Context, _ string, _ int, _ time.Month) ([]models.Transaction, error) {
	return f.txs, f.err
}

type fakeCategoryLister struct {
	cats []models.Category
	err  error
}

func (f *fakeCategoryLister) List(_ context.Context, _ string) ([]models.Category, error) {
	return f.cats, f.err
}

func TestMonthReportTotals(t *testing.T) {
	ledger := &fakeLedgerProvider{txs: []models.Transaction{
		{Type: models.TypeIncome, Category: "Salário", Amount: 5000},
		{Type: models.TypeExpense, Category: "Alimentação", Amount: 1200},
		{Type: models.TypeExpense, Category: "Alimentação", Amount: 300},
		{Type: models.TypeExpense, Category: "Transporte", Amount: 500},
	}}
	cats := &fakeCategoryLister{cats: []models.Category{
		{Name: "Alimentação", Color: "#f97316"},
		{Name: "Transporte", Color: "#3b82f6"},
	}}
	svc := NewReportService(ledger, cats)

	report, err := svc.MonthReport(helpers.TestCtx(), "uid", 2025, time.March)
	if err != nil {
		t.Fatalf("MonthReport returned error: %v", err)
	}

	if report.IncomeTotal != 5000 || report.ExpenseTotal != 2000 {
		t.Fatalf("totals wrong: income=%v expense=%v", report.IncomeTotal, report.ExpenseTotal)
	}
	if report.Balance != 3000 {
		t.Fatalf("balance = %v, want 3000", report.Balance)
	}
	if len(report.Transactions) != 4 {
		t.Fatalf("report must carry the full ledger, got %d entries", len(report.Transactions))
	}
}

func TestMonthReportExpenseBreakdown(t *testing.T) {
	ledger := &fakeLedgerProvider{txs: []models.Transaction{
		{Type: models.TypeExpense, Category: "Alimentação", Amount: 600},
		{Type: models.TypeExpense, Category: "Transporte", Amount: 400},
	}}
	cats := &fakeCategoryLister{cats: []models.Category{
		{Name: "Alimentação", Color: "#f97316"},
	}}
	svc := NewReportService(ledger, cats)

	report, err := svc.MonthReport(helpers.TestCtx(), "uid", 2025, time.March)
	if err != nil {
		t.Fatalf("MonthReport returned error: %v", err)
	}

	if len(report.Expenses) != 2 {
		t.Fatalf("got %d expense categories, want 2", len(report.Expenses))
	}
	// Sorted by total, largest first.
	if report.Expenses[0].Category != "Alimentação" || report.Expenses[0].Percent != 60 {
		t.Fatalf("top category wrong: %+v", report.Expenses[0])
	}
	if report.Expenses[1].Percent != 40 {
		t.Fatalf("share wrong: %+v", report.Expenses[1])
	}
	if report.Expenses[0].Color != "#f97316" {
		t.Fatalf("known category did not resolve its color: %+v", report.Expenses[0])
	}
	// Transporte has no stored category anymore; it falls back to gray.
	if report.Expenses[1].Color != models.DefaultCategoryColor {
		t.Fatalf("orphan category color = %s, want default", report.Expenses[1].Color)
	}
}

func TestMonthReportZeroTotalsYieldEmptyBreakdowns(t *testing.T) {
	svc := NewReportService(&fakeLedgerProvider{}, &fakeCategoryLister{})

	report, err := svc.MonthReport(helpers.TestCtx(), "uid", 2025, time.March)
	if err != nil {
		t.Fatalf("MonthReport returned error: %v", err)
	}

	if report.Expenses == nil || len(report.Expenses) != 0 {
		t.Fatalf("empty month must yield an empty (non-nil) expense breakdown: %v", report.Expenses)
	}
	if report.Incomes == nil || len(report.Incomes) != 0 {
		t.Fatalf("empty month must yield an empty (non-nil) income breakdown: %v", report.Incomes)
	}
	if report.Balance != 0 {
		t.Fatalf("balance = %v, want 0", report.Balance)
	}
}
