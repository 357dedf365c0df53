package models

import (
	"strings"
	"time"

	"github.com/financas-app/backend/internal/errs"
)

// GoalCategoryName is the bookkeeping category used by goal contributions
// and withdrawals. It is seeded for every user and cannot be deleted.
const GoalCategoryName = "Metas"

type Category struct {
	CategoryID string    `firestore:"categoryId" json:"categoryId"`
	Name       string    `firestore:"name" json:"name"`
	Color      string    `firestore:"color" json:"color"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func NewCategory(id, name, color string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValidationError("category name is required")
	}
	if color == "" {
		color = DefaultCategoryColor
	}

	now := time.Now()
	return &Category{
		CategoryID: id,
		Name:       strings.TrimSpace(name),
		Color:      color,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// DefaultCategoryColor is used when a transaction's category no longer
// resolves to a stored category.
const DefaultCategoryColor = "#9ca3af"

// Protected reports whether the category may never be deleted.
func (c *Category) Protected() bool {
	return strings.EqualFold(c.Name, GoalCategoryName)
}
