package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/helpers"
)

type fakeTransactionStore struct {
	created []models.Transaction
	batches [][]models.Transaction
	stored  map[string]*models.Transaction
	group   []models.Transaction

	updated      *models.Transaction
	deletedID    string
	deletedGroup string

	groupFn func(t *models.Transaction) []firestore.Update

	err error
}

func (f *fakeTransactionStore) Create(_ context.Context, _ string, t *models.Transaction) error {
	f.created = append(f.created, *t)
	return f.err
}

func (f *fakeTransactionStore) CreateBatch(_ context.Context, _ string, txs []models.Transaction) error {
	f.batches = append(f.batches, txs)
	return f.err
}

func (f *fakeTransactionStore) Get(_ context.Context, _ string, txID string) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.stored[txID]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactionStore) Update(_ context.Context, _ string, t *models.Transaction) error {
	f.updated = t
	return f.err
}

func (f *fakeTransactionStore) Delete(_ context.Context, _ string, txID string) error {
	f.deletedID = txID
	return f.err
}

func (f *fakeTransactionStore) ListMonth(_ context.Context, _ string, _ int, _ time.Month) ([]models.Transaction, error) {
	return nil, f.err
}

func (f *fakeTransactionStore) ListByGroup(_ context.Context, _ string, _ string) ([]models.Transaction, error) {
	return f.group, f.err
}

func (f *fakeTransactionStore) UpdateGroup(_ context.Context, _ string, _ string, perDoc func(t *models.Transaction) []firestore.Update) error {
	f.groupFn = perDoc
	return f.err
}

func (f *fakeTransactionStore) DeleteGroup(_ context.Context, _ string, groupID string) error {
	f.deletedGroup = groupID
	return f.err
}

func (f *fakeTransactionStore) WatchMonth(_ context.Context, _ string, _ int, _ time.Month) (<-chan []models.Transaction, context.CancelFunc) {
	ch := make(chan []models.Transaction)
	close(ch)
	return ch, func() {}
}

type fakeFixedExpenseStore struct {
	expenses []models.FixedExpense
	err      error
}

func (f *fakeFixedExpenseStore) List(_ context.Context, _ string) ([]models.FixedExpense, error) {
	return f.expenses, f.err
}

func (f *fakeFixedExpenseStore) Get(_ context.Context, _ string, id string) (*models.FixedExpense, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.expenses {
		if f.expenses[i].FixedExpenseID == id {
			return &f.expenses[i], nil
		}
	}
	return nil, errs.NewNotFoundError("fixed expense not found")
}

func TestTransactionCreatePlain(t *testing.T) {
	store := &fakeTransactionStore{}
	svc := NewTransactionService(store, &fakeFixedExpenseStore{})

	txs, err := svc.Create(helpers.TestCtx(), "uid", dto.CreateTransactionRequest{
		Description:   "Mercado",
		Amount:        250,
		Date:          "2025-03-10",
		Type:          "expense",
		Category:      "Alimentação",
		PaymentMethod: "debit",
		IsPaid:        true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(txs) != 1 || len(store.created) != 1 {
		t.Fatalf("expected a single direct write, got %d returned / %d created", len(txs), len(store.created))
	}
	if len(store.batches) != 0 {
		t.Fatalf("plain create must not use the batch path")
	}
	if txs[0].InstallmentGroupID != "" {
		t.Fatalf("plain transaction must not carry a group ID")
	}
}

func TestTransactionCreateInstallments(t *testing.T) {
	store := &fakeTransactionStore{}
	svc := NewTransactionService(store, &fakeFixedExpenseStore{})

	txs, err := svc.Create(helpers.TestCtx(), "uid", dto.CreateTransactionRequest{
		Description:   "Notebook",
		Amount:        3000,
		Date:          "2025-03-10",
		Type:          "expense",
		Category:      "Eletrônicos",
		PaymentMethod: "credit",
		Installments:  10,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(txs) != 10 {
		t.Fatalf("expected 10 installments, got %d", len(txs))
	}
	if len(store.batches) != 1 || len(store.batches[0]) != 10 {
		t.Fatalf("installments must be written as one batch of 10")
	}
	if len(store.created) != 0 {
		t.Fatalf("installment create must not use the single-doc path")
	}
}

func TestTransactionCreateInstallmentIncomeRejected(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, &fakeFixedExpenseStore{})

	_, err := svc.Create(helpers.TestCtx(), "uid", dto.CreateTransactionRequest{
		Description:  "Salário",
		Amount:       5000,
		Date:         "2025-03-05",
		Type:         "income",
		Installments: 3,
	})

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransactionCreateBadDate(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, &fakeFixedExpenseStore{})

	_, err := svc.Create(helpers.TestCtx(), "uid", dto.CreateTransactionRequest{
		Description: "Mercado",
		Amount:      100,
		Date:        "10/03/2025",
		Type:        "expense",
	})

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}

func TestTransactionUpdatePatchesFields(t *testing.T) {
	existing, _ := models.NewTransaction("t1", "Mercado", 100,
		date(2025, time.March, 10), models.TypeExpense, "Alimentação", models.PaymentDebit, false)
	store := &fakeTransactionStore{stored: map[string]*models.Transaction{"t1": existing}}
	svc := NewTransactionService(store, &fakeFixedExpenseStore{})

	tx, err := svc.Update(helpers.TestCtx(), "uid", "t1", dto.UpdateTransactionRequest{
		Amount: helpers.Ptr(120.0),
		IsPaid: helpers.Ptr(true),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if tx.Amount != 120 || !tx.IsPaid {
		t.Fatalf("patch not applied: %+v", tx)
	}
	if tx.Description != "Mercado" {
		t.Fatalf("untouched field changed: %+v", tx)
	}
	if store.updated == nil {
		t.Fatalf("store.Update was not called")
	}
}

func TestTransactionUpdateGroupRewritesSuffix(t *testing.T) {
	store := &fakeTransactionStore{}
	svc := NewTransactionService(store, &fakeFixedExpenseStore{})

	desc := "Notebook Dell"
	err := svc.UpdateGroup(helpers.TestCtx(), "uid", "g1", dto.UpdateGroupRequest{Description: &desc})
	if err != nil {
		t.Fatalf("UpdateGroup returned error: %v", err)
	}
	if store.groupFn == nil {
		t.Fatalf("store.UpdateGroup was not called")
	}

	member := &models.Transaction{InstallmentNumber: 3, Installments: 10}
	updates := store.groupFn(member)
	if len(updates) != 1 || updates[0].Path != "description" {
		t.Fatalf("unexpected updates: %+v", updates)
	}
	if updates[0].Value != "Notebook Dell (3/10)" {
		t.Fatalf("description = %v, want numbered suffix preserved", updates[0].Value)
	}
}

func TestTransactionUpdateGroupRejectsAmountAndDate(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, &fakeFixedExpenseStore{})

	err := svc.UpdateGroup(helpers.TestCtx(), "uid", "g1", dto.UpdateGroupRequest{Amount: helpers.Ptr(99.0)})
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for amount edit, got %v", err)
	}

	err = svc.UpdateGroup(helpers.TestCtx(), "uid", "g1", dto.UpdateGroupRequest{Date: helpers.Ptr("2025-04-01")})
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for date edit, got %v", err)
	}
}

func TestTransactionListGroupSortsByNumber(t *testing.T) {
	store := &fakeTransactionStore{group: []models.Transaction{
		{TransactionID: "c", InstallmentNumber: 3},
		{TransactionID: "a", InstallmentNumber: 1},
		{TransactionID: "b", InstallmentNumber: 2},
	}}
	svc := NewTransactionService(store, &fakeFixedExpenseStore{})

	members, err := svc.ListGroup(helpers.TestCtx(), "uid", "g1")
	if err != nil {
		t.Fatalf("ListGroup returned error: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if members[i].TransactionID != want {
			t.Fatalf("members out of order: %+v", members)
		}
	}
}

func TestTransactionListGroupEmptyIsNotFound(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, &fakeFixedExpenseStore{})

	_, err := svc.ListGroup(helpers.TestCtx(), "uid", "missing")
	var nferr *errs.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTransactionPayFixedMaterializesProjection(t *testing.T) {
	store := &fakeTransactionStore{}
	fixed := &fakeFixedExpenseStore{expenses: []models.FixedExpense{
		fixedExpense("fe1", "Aluguel", 1200, 31),
	}}
	svc := NewTransactionService(store, fixed)

	tx, err := svc.PayFixed(helpers.TestCtx(), "uid", "fe1", dto.PayFixedRequest{
		Month: 2, Year: 2025, PaymentMethod: "pix",
	})
	if err != nil {
		t.Fatalf("PayFixed returned error: %v", err)
	}
	if tx.Virtual() {
		t.Fatalf("materialized payment must have a real ID: %s", tx.TransactionID)
	}
	if !tx.IsPaid || !tx.IsFixed {
		t.Fatalf("flags wrong: isPaid=%v isFixed=%v", tx.IsPaid, tx.IsFixed)
	}
	if !tx.Date.Equal(date(2025, time.February, 28)) {
		t.Fatalf("payment date = %v, want clamped 2025-02-28", tx.Date)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one persisted transaction, got %d", len(store.created))
	}
}

func TestTransactionPayFixedInvalidMonth(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, &fakeFixedExpenseStore{})

	_, err := svc.PayFixed(helpers.TestCtx(), "uid", "fe1", dto.PayFixedRequest{
		Month: 13, Year: 2025, PaymentMethod: "pix",
	})
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
