package services

import (
	"sort"
	"strings"
	"time"

	"github.com/financas-app/backend/internal/models"
)

// matchesFixedExpense reports whether a persisted transaction settles a
// fixed-expense template for the month it falls in: paid, not itself a
// projection, description containing the template's description
// (case-insensitive) and day-of-month equal to the template's day after
// clamping to the month's length. The substring match is deliberately
// fuzzy; coincidental text overlap can suppress a projection.
func matchesFixedExpense(t *models.Transaction, fe *models.FixedExpense) bool {
	if !t.IsPaid || t.Virtual() {
		return false
	}
	day := fe.DayOfMonth
	if last := daysInMonth(t.Date.Year(), t.Date.Month()); day > last {
		day = last
	}
	if t.Date.Day() != day {
		return false
	}
	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(fe.Description))
}

// projectFixedExpense synthesizes the virtual (unpaid) transaction a
// template contributes to a month. The synthetic ID is derived, never
// persisted.
func projectFixedExpense(fe *models.FixedExpense, year int, month time.Month) models.Transaction {
	day := fe.DayOfMonth
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	now := time.Now()
	return models.Transaction{
		TransactionID: models.VirtualID(fe.FixedExpenseID, year, month),
		Description:   fe.Description,
		Amount:        fe.Amount,
		Date:          time.Date(year, month, day, 12, 0, 0, 0, time.UTC),
		Type:          models.TypeExpense,
		Category:      fe.Category,
		IsPaid:        false,
		IsFixed:       true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// buildMonthLedger merges a month's persisted transactions with one virtual
// projection per fixed expense that has no matching paid transaction in
// that month. Pure; safe to recompute on every change event.
func buildMonthLedger(txs []models.Transaction, fixed []models.FixedExpense, year int, month time.Month) []models.Transaction {
	ledger := make([]models.Transaction, 0, len(txs)+len(fixed))
	ledger = append(ledger, txs...)

	for i := range fixed {
		fe := &fixed[i]
		settled := false
		for j := range txs {
			if matchesFixedExpense(&txs[j], fe) {
				settled = true
				break
			}
		}
		if !settled {
			ledger = append(ledger, projectFixedExpense(fe, year, month))
		}
	}

	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Date.Before(ledger[j].Date)
	})
	return ledger
}
