package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
)

// addMonthsClamped advances a date by whole calendar months, clamping the
// day to the target month's last day (Jan 31 + 1 month is Feb 28/29, not
// Mar 2 as AddDate would give).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(months), 1, 12, 0, 0, 0, time.UTC)
	if last := daysInMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 12, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// expandInstallments splits a purchase into n dated entries sharing one
// group ID. Each entry carries total/n (plain float division, no remainder
// redistribution) plus the undivided total and count as metadata, and a
// "(i/n)" description suffix. n == 1 still produces a tagged group of one.
func expandInstallments(description string, total float64, date time.Time, n int, category string, method models.PaymentMethod, isPaid bool) ([]models.Transaction, error) {
	if n < 1 {
		return nil, errs.NewValidationError("installment count must be at least 1")
	}

	groupID := uuid.New().String()
	share := total / float64(n)

	txs := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		t, err := models.NewTransaction(
			uuid.New().String(),
			fmt.Sprintf("%s (%d/%d)", description, i+1, n),
			share,
			addMonthsClamped(date, i),
			models.TypeExpense,
			category,
			method,
			isPaid && i == 0, // only the first installment can already be paid
		)
		if err != nil {
			return nil, err
		}
		t.InstallmentGroupID = groupID
		t.InstallmentNumber = i + 1
		t.Installments = n
		t.TotalAmount = total
		txs = append(txs, *t)
	}
	return txs, nil
}
