package dto

// CreateTransactionRequest covers both a plain entry and an installment
// purchase. Installments > 1 splits Amount across that many monthly
// entries; Installments == 1 with IsInstallment set still tags the single
// entry as a group of one.
type CreateTransactionRequest struct {
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	IsPaid        bool    `json:"isPaid"`
	Installments  int     `json:"installments,omitempty"`
	IsInstallment bool    `json:"isInstallment,omitempty"`
}

type UpdateTransactionRequest struct {
	Description   *string  `json:"description,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	Date          *string  `json:"date,omitempty"`
	Category      *string  `json:"category,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	IsPaid        *bool    `json:"isPaid,omitempty"`
}

// UpdateGroupRequest edits the shared fields of an installment group.
// Amount and Date are decoded only so the service can reject them: group
// edits never touch per-installment values or ordering.
type UpdateGroupRequest struct {
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	Date          *string  `json:"date,omitempty"`
}

// PayFixedRequest materializes a fixed-expense projection as a paid
// transaction for one month.
type PayFixedRequest struct {
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	PaymentMethod string `json:"paymentMethod"`
}
