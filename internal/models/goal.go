package models

import (
	"strings"
	"time"

	"github.com/financas-app/backend/internal/errs"
)

// Goal is a savings target. CurrentAmount moves only through paired
// contribute/withdraw operations, each of which also records a ledger
// transaction under the "Metas" category.
type Goal struct {
	GoalID        string    `firestore:"goalId" json:"goalId"`
	Name          string    `firestore:"name" json:"name"`
	TargetAmount  float64   `firestore:"targetAmount" json:"targetAmount"`
	CurrentAmount float64   `firestore:"currentAmount" json:"currentAmount"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func NewGoal(id, name string, target float64) (*Goal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValidationError("goal name is required")
	}
	if target <= 0 {
		return nil, errs.NewValidationError("target amount must be positive")
	}

	now := time.Now()
	return &Goal{
		GoalID:       id,
		Name:         strings.TrimSpace(name),
		TargetAmount: target,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
