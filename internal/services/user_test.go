package services

import (
	"context"
	"errors"
	"testing"

	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/helpers"
)

type stubUserStore struct {
	user        *models.User
	createCalls int
	err         error
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.user = user
	s.createCalls++
	return s.err
}

func (s *stubUserStore) GetUser(_ context.Context, _ string) (*models.User, error) {
	return s.user, s.err
}

type stubSeeder struct {
	seededUID string
	calls     int
	err       error
}

func (s *stubSeeder) SeedDefaults(_ context.Context, uid string) error {
	s.seededUID = uid
	s.calls++
	return s.err
}

func TestUserRegister(t *testing.T) {
	store := &stubUserStore{}
	seeder := &stubSeeder{}
	svc := NewUserService(store, seeder)

	err := svc.Register(helpers.TestCtx(), "uid-123", "ana@example.com", "Ana")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if store.createCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createCalls)
	}
	if store.user.UID != "uid-123" || store.user.Email != "ana@example.com" || store.user.Name != "Ana" {
		t.Fatalf("unexpected user payload: %+v", store.user)
	}
	if store.user.CreatedAt.IsZero() || store.user.UpdatedAt.IsZero() {
		t.Fatalf("timestamps were not set: %+v", store.user)
	}

	if seeder.calls != 1 || seeder.seededUID != "uid-123" {
		t.Fatalf("default categories not seeded for the new user: %+v", seeder)
	}
}

func TestUserRegisterStoreError(t *testing.T) {
	store := &stubUserStore{err: errors.New("store failure")}
	seeder := &stubSeeder{}
	svc := NewUserService(store, seeder)

	err := svc.Register(helpers.TestCtx(), "uid-456", "bia@example.com", "Bia")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if seeder.calls != 0 {
		t.Fatalf("seeding must not run when user creation fails")
	}
}
