package services

import (
	"context"
	"errors"
	"testing"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/helpers"
)

type fakeCategoryStore struct {
	cats map[string]*models.Category

	renamed struct {
		called           bool
		oldName, newName string
		color            string
	}
	deletedID string
	seeded    []models.Category

	err error
}

func (f *fakeCategoryStore) Create(_ context.Context, _ string, c *models.Category) error {
	if f.cats == nil {
		f.cats = map[string]*models.Category{}
	}
	f.cats[c.CategoryID] = c
	return f.err
}

func (f *fakeCategoryStore) Get(_ context.Context, _ string, categoryID string) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.cats[categoryID]
	if !ok {
		return nil, errs.NewNotFoundError("category not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryStore) List(_ context.Context, _ string) ([]models.Category, error) {
	out := make([]models.Category, 0, len(f.cats))
	for _, c := range f.cats {
		out = append(out, *c)
	}
	return out, f.err
}

func (f *fakeCategoryStore) Delete(_ context.Context, _ string, categoryID string) error {
	f.deletedID = categoryID
	delete(f.cats, categoryID)
	return f.err
}

func (f *fakeCategoryStore) RenameCascade(_ context.Context, _ string, categoryID, oldName, newName, color string) error {
	f.renamed.called = true
	f.renamed.oldName = oldName
	f.renamed.newName = newName
	f.renamed.color = color
	if c, ok := f.cats[categoryID]; ok {
		c.Name = newName
		c.Color = color
	}
	return f.err
}

func (f *fakeCategoryStore) SeedDefaults(_ context.Context, _ string, cats []models.Category) error {
	f.seeded = cats
	return f.err
}

func categoryFixture() *fakeCategoryStore {
	return &fakeCategoryStore{cats: map[string]*models.Category{
		"c1":    {CategoryID: "c1", Name: "Lazer", Color: "#ec4899"},
		"c2":    {CategoryID: "c2", Name: "Transporte", Color: "#3b82f6"},
		"metas": {CategoryID: "metas", Name: models.GoalCategoryName, Color: "#06b6d4"},
	}}
}

func TestCategoryRenameCascades(t *testing.T) {
	store := categoryFixture()
	svc := NewCategoryService(store)

	name := "Entretenimento"
	c, err := svc.Update(helpers.TestCtx(), "uid", "c1", dto.UpdateCategoryRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if c.Name != "Entretenimento" {
		t.Fatalf("name = %s, want Entretenimento", c.Name)
	}
	if !store.renamed.called {
		t.Fatalf("rename did not cascade")
	}
	if store.renamed.oldName != "Lazer" || store.renamed.newName != "Entretenimento" {
		t.Fatalf("cascade got %q -> %q", store.renamed.oldName, store.renamed.newName)
	}
}

func TestCategoryRenameDuplicateRejected(t *testing.T) {
	svc := NewCategoryService(categoryFixture())

	name := "transporte" // case-insensitive clash with c2
	_, err := svc.Update(helpers.TestCtx(), "uid", "c1", dto.UpdateCategoryRequest{Name: &name})

	var aerr *errs.AlreadyExistsError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected already-exists error, got %v", err)
	}
}

func TestCategoryRenameProtectedRejected(t *testing.T) {
	svc := NewCategoryService(categoryFixture())

	name := "Objetivos"
	_, err := svc.Update(helpers.TestCtx(), "uid", "metas", dto.UpdateCategoryRequest{Name: &name})

	var perr *errs.ProtectedResourceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected protected-resource error, got %v", err)
	}
}

func TestCategoryRecolorOnly(t *testing.T) {
	store := categoryFixture()
	svc := NewCategoryService(store)

	c, err := svc.Update(helpers.TestCtx(), "uid", "c1", dto.UpdateCategoryRequest{Color: helpers.Ptr("#000000")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if c.Name != "Lazer" || c.Color != "#000000" {
		t.Fatalf("recolor result wrong: %+v", c)
	}
	if store.renamed.newName != "Lazer" {
		t.Fatalf("recolor must keep the name: %q", store.renamed.newName)
	}
}

func TestCategoryRecolorProtectedAllowed(t *testing.T) {
	store := categoryFixture()
	svc := NewCategoryService(store)

	c, err := svc.Update(helpers.TestCtx(), "uid", "metas", dto.UpdateCategoryRequest{Color: helpers.Ptr("#ffffff")})
	if err != nil {
		t.Fatalf("recoloring the goal category must be allowed: %v", err)
	}
	if c.Name != models.GoalCategoryName || c.Color != "#ffffff" {
		t.Fatalf("recolor result wrong: %+v", c)
	}
}

func TestCategoryDeleteProtectedRejected(t *testing.T) {
	store := categoryFixture()
	svc := NewCategoryService(store)

	err := svc.Delete(helpers.TestCtx(), "uid", "metas")

	var perr *errs.ProtectedResourceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected protected-resource error, got %v", err)
	}
	if store.deletedID != "" {
		t.Fatalf("protected category was deleted")
	}
}

func TestCategoryDelete(t *testing.T) {
	store := categoryFixture()
	svc := NewCategoryService(store)

	if err := svc.Delete(helpers.TestCtx(), "uid", "c1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if store.deletedID != "c1" {
		t.Fatalf("deleted %q, want c1", store.deletedID)
	}
}

func TestSeedDefaultsIncludesProtectedCategory(t *testing.T) {
	store := &fakeCategoryStore{}
	svc := NewCategoryService(store)

	if err := svc.SeedDefaults(helpers.TestCtx(), "uid"); err != nil {
		t.Fatalf("SeedDefaults returned error: %v", err)
	}
	if len(store.seeded) == 0 {
		t.Fatalf("no categories seeded")
	}

	found := false
	for _, c := range store.seeded {
		if c.Protected() {
			found = true
		}
		if c.Color == "" {
			t.Fatalf("seeded category %q has no color", c.Name)
		}
	}
	if !found {
		t.Fatalf("seed set must include the goal category")
	}
}
