package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/helpers"
	"github.com/financas-app/backend/pkg/logger"
)

type categoryCSStore interface {
	Create(ctx context.Context, uid string, c *models.Category) error
	Get(ctx context.Context, uid, categoryID string) (*models.Category, error)
	List(ctx context.Context, uid string) ([]models.Category, error)
	Delete(ctx context.Context, uid, categoryID string) error
	RenameCascade(ctx context.Context, uid, categoryID, oldName, newName, color string) error
	SeedDefaults(ctx context.Context, uid string, cats []models.Category) error
}

type categoryService struct {
	store categoryCSStore
}

func NewCategoryService(store categoryCSStore) *categoryService {
	return &categoryService{store: store}
}

func (s *categoryService) Create(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error) {
	c, err := models.NewCategory(uuid.New().String(), req.Name, req.Color)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, uid, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context, uid string) ([]models.Category, error) {
	return s.store.List(ctx, uid)
}

// Update recolors and/or renames a category. A rename cascades atomically
// to every transaction and budget carrying the old name.
func (s *categoryService) Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*models.Category, error) {
	c, err := s.store.Get(ctx, uid, categoryID)
	if err != nil {
		return nil, err
	}

	color := helpers.NonZero(req.Color, c.Color)

	newName := c.Name
	if req.Name != nil && !strings.EqualFold(*req.Name, c.Name) {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errs.NewValidationError("category name is required")
		}
		if c.Protected() {
			return nil, errs.NewProtectedResourceError("the goal category cannot be renamed")
		}
		existing, err := s.store.List(ctx, uid)
		if err != nil {
			return nil, err
		}
		for i := range existing {
			if existing[i].CategoryID != categoryID && strings.EqualFold(existing[i].Name, *req.Name) {
				return nil, errs.NewAlreadyExistsError("category already exists")
			}
		}
		newName = strings.TrimSpace(*req.Name)
	}

	if err := s.store.RenameCascade(ctx, uid, categoryID, c.Name, newName, color); err != nil {
		return nil, err
	}
	if newName != c.Name {
		logger.FromContext(ctx).Info("category renamed", "category_id", categoryID, "from", c.Name, "to", newName)
	}

	c.Name = newName
	c.Color = color
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, uid, categoryID string) error {
	c, err := s.store.Get(ctx, uid, categoryID)
	if err != nil {
		return err
	}
	if c.Protected() {
		return errs.NewProtectedResourceError("the goal category cannot be deleted")
	}
	return s.store.Delete(ctx, uid, categoryID)
}

// defaultCategories is the starter set seeded for every new user. "Metas"
// backs goal bookkeeping and is protected from deletion.
func defaultCategories() []models.Category {
	defaults := []struct {
		name  string
		color string
	}{
		{"Alimentação", "#f97316"},
		{"Transporte", "#3b82f6"},
		{"Moradia", "#8b5cf6"},
		{"Lazer", "#ec4899"},
		{"Saúde", "#10b981"},
		{"Educação", "#eab308"},
		{models.GoalCategoryName, "#06b6d4"},
	}

	cats := make([]models.Category, 0, len(defaults))
	for _, d := range defaults {
		c, _ := models.NewCategory(uuid.New().String(), d.name, d.color)
		cats = append(cats, *c)
	}
	return cats
}

// SeedDefaults installs the starter categories for a new user.
func (s *categoryService) SeedDefaults(ctx context.Context, uid string) error {
	return s.store.SeedDefaults(ctx, uid, defaultCategories())
}
