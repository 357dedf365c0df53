package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/helpers"
	"github.com/financas-app/backend/pkg/logger"
)

const dateLayout = "2006-01-02"

type transactionTXStore interface {
	Create(ctx context.Context, uid string, t *models.Transaction) error
	CreateBatch(ctx context.Context, uid string, txs []models.Transaction) error
	Get(ctx context.Context, uid, txID string) (*models.Transaction, error)
	Update(ctx context.Context, uid string, t *models.Transaction) error
	Delete(ctx context.Context, uid, txID string) error
	ListMonth(ctx context.Context, uid string, year int, month time.Month) ([]models.Transaction, error)
	ListByGroup(ctx context.Context, uid, groupID string) ([]models.Transaction, error)
	UpdateGroup(ctx context.Context, uid, groupID string, perDoc func(t *models.Transaction) []firestore.Update) error
	DeleteGroup(ctx context.Context, uid, groupID string) error
	WatchMonth(ctx context.Context, uid string, year int, month time.Month) (<-chan []models.Transaction, context.CancelFunc)
}

type fixedExpenseTXStore interface {
	List(ctx context.Context, uid string) ([]models.FixedExpense, error)
	Get(ctx context.Context, uid, id string) (*models.FixedExpense, error)
}

type transactionService struct {
	txs   transactionTXStore
	fixed fixedExpenseTXStore
}

func NewTransactionService(txs transactionTXStore, fixed fixedExpenseTXStore) *transactionService {
	return &transactionService{txs: txs, fixed: fixed}
}

// Create records a transaction. A request with Installments > 1 (or an
// explicit installment-of-one) expands into dated entries written as one
// atomic batch.
func (s *transactionService) Create(ctx context.Context, uid string, req dto.CreateTransactionRequest) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if req.Installments > 1 || req.IsInstallment {
		n := req.Installments
		if n < 1 {
			n = 1
		}
		if models.TransactionType(req.Type) != models.TypeExpense {
			return nil, errs.NewValidationError("installment purchases must be expenses")
		}
		txs, err := expandInstallments(req.Description, req.Amount, date, n,
			req.Category, models.PaymentMethod(req.PaymentMethod), req.IsPaid)
		if err != nil {
			return nil, err
		}
		if err := s.txs.CreateBatch(ctx, uid, txs); err != nil {
			return nil, err
		}
		log.Info("installment purchase created",
			"group_id", txs[0].InstallmentGroupID,
			"installments", n,
			"total", req.Amount)
		return txs, nil
	}

	t, err := models.NewTransaction(uuid.New().String(), req.Description, req.Amount, date,
		models.TransactionType(req.Type), req.Category,
		models.PaymentMethod(req.PaymentMethod), req.IsPaid)
	if err != nil {
		return nil, err
	}
	if err := s.txs.Create(ctx, uid, t); err != nil {
		return nil, err
	}
	log.Info("transaction created", "transaction_id", t.TransactionID, "type", t.Type)
	return []models.Transaction{*t}, nil
}

// MonthLedger returns the effective transaction list for a month: persisted
// entries plus a virtual projection for each fixed expense without a
// matching paid transaction.
func (s *transactionService) MonthLedger(ctx context.Context, uid string, year int, month time.Month) ([]models.Transaction, error) {
	txs, err := s.txs.ListMonth(ctx, uid, year, month)
	if err != nil {
		return nil, err
	}
	fixed, err := s.fixed.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return buildMonthLedger(txs, fixed, year, month), nil
}

// WatchLedger subscribes to a month's effective ledger: an event per
// underlying data change, each carrying the freshly recomputed merge of
// persisted transactions and fixed-expense projections.
func (s *transactionService) WatchLedger(ctx context.Context, uid string, year int, month time.Month) (<-chan []models.Transaction, context.CancelFunc) {
	raw, cancel := s.txs.WatchMonth(ctx, uid, year, month)
	out := make(chan []models.Transaction)

	go func() {
		defer close(out)
		for txs := range raw {
			fixed, err := s.fixed.List(ctx, uid)
			if err != nil {
				logger.FromContext(ctx).Error("ledger watch: fixed expense read failed", "error", err)
				return
			}
			select {
			case out <- buildMonthLedger(txs, fixed, year, month):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cancel
}

func (s *transactionService) Update(ctx context.Context, uid, txID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	t, err := s.txs.Get(ctx, uid, txID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if *req.Description == "" {
			return nil, errs.NewValidationError("description is required")
		}
		t.Description = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, errs.NewValidationError("amount must be positive")
		}
		t.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		t.Date = models.NormalizeDate(date)
	}
	t.Category = helpers.ValueOr(req.Category, t.Category)
	if req.PaymentMethod != nil {
		if t.Type != models.TypeExpense {
			return nil, errs.NewValidationError("payment method applies to expenses only")
		}
		if !validMethod(models.PaymentMethod(*req.PaymentMethod)) {
			return nil, errs.NewValidationError("invalid payment method")
		}
		t.PaymentMethod = models.PaymentMethod(*req.PaymentMethod)
	}
	t.IsPaid = helpers.ValueOr(req.IsPaid, t.IsPaid)

	if err := s.txs.Update(ctx, uid, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *transactionService) Delete(ctx context.Context, uid, txID string) error {
	return s.txs.Delete(ctx, uid, txID)
}

// UpdateGroup applies shared-field changes to every member of an
// installment group. Amount and date are excluded: editing them would break
// per-installment values and the chronological ordering of the split.
func (s *transactionService) UpdateGroup(ctx context.Context, uid, groupID string, req dto.UpdateGroupRequest) error {
	if req.Amount != nil || req.Date != nil {
		return errs.NewValidationError("amount and date cannot be edited on an installment group")
	}
	if req.Description == nil && req.Category == nil && req.PaymentMethod == nil {
		return errs.NewValidationError("no group fields to update")
	}
	if req.Description != nil && *req.Description == "" {
		return errs.NewValidationError("description is required")
	}
	if req.PaymentMethod != nil && !validMethod(models.PaymentMethod(*req.PaymentMethod)) {
		return errs.NewValidationError("invalid payment method")
	}

	return s.txs.UpdateGroup(ctx, uid, groupID, func(t *models.Transaction) []firestore.Update {
		var updates []firestore.Update
		if req.Description != nil {
			// Each member keeps its numbered suffix.
			desc := fmt.Sprintf("%s (%d/%d)", *req.Description, t.InstallmentNumber, t.Installments)
			updates = append(updates, firestore.Update{Path: "description", Value: desc})
		}
		if req.Category != nil {
			updates = append(updates, firestore.Update{Path: "category", Value: *req.Category})
		}
		if req.PaymentMethod != nil {
			updates = append(updates, firestore.Update{Path: "paymentMethod", Value: *req.PaymentMethod})
		}
		return updates
	})
}

func (s *transactionService) DeleteGroup(ctx context.Context, uid, groupID string) error {
	return s.txs.DeleteGroup(ctx, uid, groupID)
}

// ListGroup returns the members of an installment purchase in date order.
func (s *transactionService) ListGroup(ctx context.Context, uid, groupID string) ([]models.Transaction, error) {
	members, err := s.txs.ListByGroup(ctx, uid, groupID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, errs.NewNotFoundError("installment group not found")
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].InstallmentNumber < members[j].InstallmentNumber
	})
	return members, nil
}

// PayFixed materializes a fixed-expense projection into a real paid
// transaction for the given month. The projection itself is never mutated;
// it vanishes from later computations because the new transaction matches
// the template.
func (s *transactionService) PayFixed(ctx context.Context, uid, fixedExpenseID string, req dto.PayFixedRequest) (*models.Transaction, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, errs.NewValidationError("month must be between 1 and 12")
	}
	if req.Year < 1 {
		return nil, errs.NewValidationError("year is required")
	}
	method := models.PaymentMethod(req.PaymentMethod)
	if !validMethod(method) {
		return nil, errs.NewValidationError("invalid payment method")
	}

	fe, err := s.fixed.Get(ctx, uid, fixedExpenseID)
	if err != nil {
		return nil, err
	}

	projection := projectFixedExpense(fe, req.Year, time.Month(req.Month))
	t, err := models.NewTransaction(uuid.New().String(), projection.Description,
		projection.Amount, projection.Date, models.TypeExpense, projection.Category,
		method, true)
	if err != nil {
		return nil, err
	}
	t.IsFixed = true

	if err := s.txs.Create(ctx, uid, t); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("fixed expense paid",
		"fixed_expense_id", fixedExpenseID,
		"transaction_id", t.TransactionID,
		"month", req.Month, "year", req.Year)
	return t, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errs.NewValidationError("date is required")
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, errs.NewValidationError(fmt.Sprintf("date must be in %s format", dateLayout))
	}
	return date, nil
}

func validMethod(m models.PaymentMethod) bool {
	switch m {
	case models.PaymentDebit, models.PaymentCredit, models.PaymentCash, models.PaymentPix:
		return true
	}
	return false
}
