package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/financas-app/backend/internal/errs"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type PaymentMethod string

const (
	PaymentDebit  PaymentMethod = "debit"
	PaymentCredit PaymentMethod = "credit"
	PaymentCash   PaymentMethod = "cash"
	PaymentPix    PaymentMethod = "pix"
)

// Transaction is a single ledger entry. Virtual projections of fixed
// expenses share this shape but carry a synthetic ID and are never
// written to Firestore.
type Transaction struct {
	TransactionID string          `firestore:"transactionId" json:"transactionId"`
	Description   string          `firestore:"description" json:"description"`
	Amount        float64         `firestore:"amount" json:"amount"`
	Date          time.Time       `firestore:"date" json:"date"`
	Type          TransactionType `firestore:"type" json:"type"`
	Category      string          `firestore:"category" json:"category"`
	PaymentMethod PaymentMethod   `firestore:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	IsPaid        bool            `firestore:"isPaid" json:"isPaid"`
	IsFixed       bool            `firestore:"isFixed,omitempty" json:"isFixed,omitempty"`

	// Installment metadata, set on every member of an installment group.
	InstallmentGroupID string  `firestore:"installmentGroupId,omitempty" json:"installmentGroupId,omitempty"`
	InstallmentNumber  int     `firestore:"installmentNumber,omitempty" json:"installmentNumber,omitempty"`
	Installments       int     `firestore:"installments,omitempty" json:"installments,omitempty"`
	TotalAmount        float64 `firestore:"totalAmount,omitempty" json:"totalAmount,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// VirtualIDPrefix marks transaction IDs synthesized from fixed-expense
// projections. Synthetic IDs are derived, never persisted.
const VirtualIDPrefix = "fixed-"

// VirtualID builds the synthetic ID for a fixed expense projected into a
// given month.
func VirtualID(fixedExpenseID string, year int, month time.Month) string {
	return fmt.Sprintf("%s%s-%d-%d", VirtualIDPrefix, fixedExpenseID, year, int(month))
}

// Virtual reports whether the transaction is a non-persisted projection.
func (t *Transaction) Virtual() bool {
	return strings.HasPrefix(t.TransactionID, VirtualIDPrefix)
}

// NormalizeDate pins a calendar date to noon UTC so timezone conversion in
// clients cannot shift it across a day boundary.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func validTransactionType(t TransactionType) bool {
	return t == TypeIncome || t == TypeExpense
}

func validPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentDebit, PaymentCredit, PaymentCash, PaymentPix:
		return true
	}
	return false
}

// NewTransaction validates and builds a persisted ledger entry. Income is
// implicitly paid and carries no payment method.
func NewTransaction(id, description string, amount float64, date time.Time, txType TransactionType, category string, method PaymentMethod, isPaid bool) (*Transaction, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errs.NewValidationError("description is required")
	}
	if amount <= 0 {
		return nil, errs.NewValidationError("amount must be positive")
	}
	if !validTransactionType(txType) {
		return nil, errs.NewValidationError("type must be income or expense")
	}
	if txType == TypeIncome {
		isPaid = true
		method = ""
	} else if !validPaymentMethod(method) {
		return nil, errs.NewValidationError("invalid payment method")
	}

	now := time.Now()
	return &Transaction{
		TransactionID: id,
		Description:   strings.TrimSpace(description),
		Amount:        amount,
		Date:          NormalizeDate(date),
		Type:          txType,
		Category:      category,
		PaymentMethod: method,
		IsPaid:        isPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
