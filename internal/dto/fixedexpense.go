package dto

type CreateFixedExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	DayOfMonth  int     `json:"dayOfMonth"`
}

type UpdateFixedExpenseRequest struct {
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	DayOfMonth  *int     `json:"dayOfMonth,omitempty"`
}
