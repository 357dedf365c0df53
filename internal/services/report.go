package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/models"
)

type ledgerRSProvider interface {
	MonthLedger(ctx context.Context, uid string, year int, month time.Month) ([]models.Transaction, error)
}

type categoryRSStore interface {
	List(ctx context.Context, uid string) ([]models.Category, error)
}

type reportService struct {
	ledger ledgerRSProvider
	cats   categoryRSStore
}

func NewReportService(ledger ledgerRSProvider, cats categoryRSStore) *reportService {
	return &reportService{ledger: ledger, cats: cats}
}

// MonthReport aggregates the month's effective ledger, virtual projections
// included, into per-type totals and category breakdowns.
func (s *reportService) MonthReport(ctx context.Context, uid string, year int, month time.Month) (dto.MonthReport, error) {
	report := dto.MonthReport{Month: int(month), Year: year}

	txs, err := s.ledger.MonthLedger(ctx, uid, year, month)
	if err != nil {
		return report, err
	}
	cats, err := s.cats.List(ctx, uid)
	if err != nil {
		return report, err
	}

	for i := range txs {
		switch txs[i].Type {
		case models.TypeIncome:
			report.IncomeTotal += txs[i].Amount
		case models.TypeExpense:
			report.ExpenseTotal += txs[i].Amount
		}
	}
	report.Balance = report.IncomeTotal - report.ExpenseTotal
	report.Expenses = summarizeByCategory(txs, cats, models.TypeExpense)
	report.Incomes = summarizeByCategory(txs, cats, models.TypeIncome)
	report.Transactions = txs
	return report, nil
}

// summarizeByCategory groups one type's transactions by category name and
// computes each category's share of the type total. A zero total yields an
// empty slice rather than dividing by zero. Colors resolve against the
// current category list, defaulting to neutral gray for names that no
// longer exist.
func summarizeByCategory(txs []models.Transaction, cats []models.Category, txType models.TransactionType) []dto.CategorySummary {
	totals := map[string]float64{}
	var typeTotal float64
	for i := range txs {
		if txs[i].Type != txType {
			continue
		}
		totals[txs[i].Category] += txs[i].Amount
		typeTotal += txs[i].Amount
	}
	if typeTotal == 0 {
		return []dto.CategorySummary{}
	}

	out := make([]dto.CategorySummary, 0, len(totals))
	for name, total := range totals {
		out = append(out, dto.CategorySummary{
			Category: name,
			Total:    total,
			Percent:  total / typeTotal * 100,
			Color:    resolveColor(cats, name),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

func resolveColor(cats []models.Category, name string) string {
	for i := range cats {
		if strings.EqualFold(cats[i].Name, name) {
			return cats[i].Color
		}
	}
	return models.DefaultCategoryColor
}
