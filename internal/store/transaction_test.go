package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func seedTx(description string, year int, month time.Month, day int, groupID string, number, total int) models.Transaction {
	now := time.Now()
	return models.Transaction{
		TransactionID:      uuid.New().String(),
		Description:        description,
		Amount:             100,
		Date:               time.Date(year, month, day, 12, 0, 0, 0, time.UTC),
		Type:               models.TypeExpense,
		Category:           "Lazer",
		PaymentMethod:      models.PaymentDebit,
		IsPaid:             true,
		InstallmentGroupID: groupID,
		InstallmentNumber:  number,
		Installments:       total,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestTransactionListMonthWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	store := NewTransactionStore(client)
	ctx := context.Background()
	uid := uuid.New().String()

	inMonth := seedTx("Cinema", 2025, time.March, 10, "", 0, 0)
	lastDay := seedTx("Mercado", 2025, time.March, 31, "", 0, 0)
	nextMonth := seedTx("Farmácia", 2025, time.April, 1, "", 0, 0)

	for _, tx := range []models.Transaction{inMonth, lastDay, nextMonth} {
		if err := store.Create(ctx, uid, &tx); err != nil {
			t.Fatalf("seed transaction error: %v", err)
		}
	}

	got, err := store.ListMonth(ctx, uid, 2025, time.March)
	if err != nil {
		t.Fatalf("ListMonth error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListMonth returned %d entries, want 2 (month boundaries respected)", len(got))
	}
	for _, tx := range got {
		if tx.Date.Month() != time.March {
			t.Fatalf("entry outside month: %+v", tx)
		}
	}
}

func TestTransactionGroupLifecycleWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	store := NewTransactionStore(client)
	ctx := context.Background()
	uid := uuid.New().String()
	groupID := uuid.New().String()

	batch := []models.Transaction{
		seedTx("TV (1/3)", 2025, time.January, 31, groupID, 1, 3),
		seedTx("TV (2/3)", 2025, time.February, 28, groupID, 2, 3),
		seedTx("TV (3/3)", 2025, time.March, 31, groupID, 3, 3),
	}
	if err := store.CreateBatch(ctx, uid, batch); err != nil {
		t.Fatalf("CreateBatch error: %v", err)
	}

	members, err := store.ListByGroup(ctx, uid, groupID)
	if err != nil {
		t.Fatalf("ListByGroup error: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("group has %d members, want 3", len(members))
	}

	err = store.UpdateGroup(ctx, uid, groupID, func(tx *models.Transaction) []firestore.Update {
		return []firestore.Update{{Path: "category", Value: "Eletrônicos"}}
	})
	if err != nil {
		t.Fatalf("UpdateGroup error: %v", err)
	}

	members, err = store.ListByGroup(ctx, uid, groupID)
	if err != nil {
		t.Fatalf("ListByGroup after update error: %v", err)
	}
	for _, m := range members {
		if m.Category != "Eletrônicos" {
			t.Fatalf("member %s not updated: category=%s", m.TransactionID, m.Category)
		}
	}

	if err := store.DeleteGroup(ctx, uid, groupID); err != nil {
		t.Fatalf("DeleteGroup error: %v", err)
	}
	members, err = store.ListByGroup(ctx, uid, groupID)
	if err != nil {
		t.Fatalf("ListByGroup after delete error: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("group still has %d members after delete", len(members))
	}
}

func TestTransactionGetMissingWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	store := NewTransactionStore(client)

	_, err := store.Get(context.Background(), uuid.New().String(), "missing")

	var nferr *errs.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected not found, got %v", err)
	}
}
