package models

import (
	"strings"
	"time"

	"github.com/financas-app/backend/internal/errs"
)

// Budget is a per-category spending limit for one calendar month. It is
// display-only: exceeding it never blocks a transaction.
type Budget struct {
	BudgetID    string    `firestore:"budgetId" json:"budgetId"`
	Category    string    `firestore:"category" json:"category"`
	Month       int       `firestore:"month" json:"month"` // 1-12
	Year        int       `firestore:"year" json:"year"`
	LimitAmount float64   `firestore:"limitAmount" json:"limitAmount"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func NewBudget(id, category string, month, year int, limit float64) (*Budget, error) {
	if strings.TrimSpace(category) == "" {
		return nil, errs.NewValidationError("category is required")
	}
	if month < 1 || month > 12 {
		return nil, errs.NewValidationError("month must be between 1 and 12")
	}
	if year < 1 {
		return nil, errs.NewValidationError("year is required")
	}
	if limit <= 0 {
		return nil, errs.NewValidationError("limit amount must be positive")
	}

	now := time.Now()
	return &Budget{
		BudgetID:    id,
		Category:    strings.TrimSpace(category),
		Month:       month,
		Year:        year,
		LimitAmount: limit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
