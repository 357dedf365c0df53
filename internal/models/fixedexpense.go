package models

import (
	"strings"
	"time"

	"github.com/financas-app/backend/internal/errs"
)

// FixedExpense is a recurring template. It is not a ledger entry itself;
// each month it projects a virtual transaction until a matching payment is
// recorded.
type FixedExpense struct {
	FixedExpenseID string    `firestore:"fixedExpenseId" json:"fixedExpenseId"`
	Description    string    `firestore:"description" json:"description"`
	Amount         float64   `firestore:"amount" json:"amount"`
	Category       string    `firestore:"category" json:"category"`
	DayOfMonth     int       `firestore:"dayOfMonth" json:"dayOfMonth"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func NewFixedExpense(id, description string, amount float64, category string, dayOfMonth int) (*FixedExpense, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errs.NewValidationError("description is required")
	}
	if amount <= 0 {
		return nil, errs.NewValidationError("amount must be positive")
	}
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return nil, errs.NewValidationError("day of month must be between 1 and 31")
	}

	now := time.Now()
	return &FixedExpense{
		FixedExpenseID: id,
		Description:    strings.TrimSpace(description),
		Amount:         amount,
		Category:       category,
		DayOfMonth:     dayOfMonth,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
