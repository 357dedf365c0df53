package dto

import "github.com/financas-app/backend/internal/models"

type SetBudgetRequest struct {
	Category    string  `json:"category"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	LimitAmount float64 `json:"limitAmount"`
}

// BudgetProgress pairs a budget with its month's spend. BarPercent is
// clamped to 100 for display width; OverBudget comes from the unclamped
// ratio.
type BudgetProgress struct {
	Budget     models.Budget `json:"budget"`
	Spent      float64       `json:"spent"`
	BarPercent float64       `json:"barPercent"`
	OverBudget bool          `json:"overBudget"`
}
