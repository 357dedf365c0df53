package dto

import "github.com/financas-app/backend/internal/models"

// CategorySummary is one slice of the per-type breakdown: a category's
// total and its share of the type's overall total.
type CategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Percent  float64 `json:"percent"`
	Color    string  `json:"color"`
}

// MonthReport aggregates the effective ledger of one month, virtual
// projections included.
type MonthReport struct {
	Month        int                  `json:"month"`
	Year         int                  `json:"year"`
	IncomeTotal  float64              `json:"incomeTotal"`
	ExpenseTotal float64              `json:"expenseTotal"`
	Balance      float64              `json:"balance"`
	Expenses     []CategorySummary    `json:"expenses"`
	Incomes      []CategorySummary    `json:"incomes"`
	Transactions []models.Transaction `json:"transactions"`
}
