package dto

import "github.com/financas-app/backend/internal/models"

type CreateGoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"targetAmount"`
}

// GoalMovementRequest is the body of both contribute and withdraw.
type GoalMovementRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

// GoalProgress pairs a goal with its display progress. BarPercent is
// clamped to 100; Complete comes from the unclamped ratio.
type GoalProgress struct {
	Goal       models.Goal `json:"goal"`
	BarPercent float64     `json:"barPercent"`
	Complete   bool        `json:"complete"`
}
