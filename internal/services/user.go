package services

import (
	"context"
	"time"

	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type categorySeeder interface {
	SeedDefaults(ctx context.Context, uid string) error
}

type userService struct {
	store userUSStore
	cats  categorySeeder
}

func NewUserService(store userUSStore, cats categorySeeder) *userService {
	return &userService{store: store, cats: cats}
}

// Register creates the user profile on first sign-in and seeds the default
// category set, "Metas" included.
func (s *userService) Register(ctx context.Context, uid, email, name string) error {
	log := logger.FromContext(ctx)

	user := &models.User{
		UID:       uid,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return err
	}
	if err := s.cats.SeedDefaults(ctx, uid); err != nil {
		log.Error("failed to seed default categories", "error", err)
		return err
	}

	log.Info("user registered", "name", name)
	return nil
}

func (s *userService) Get(ctx context.Context, uid string) (*models.User, error) {
	return s.store.GetUser(ctx, uid)
}
