package dto

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// UpdateCategoryRequest renames and/or recolors a category. A rename
// cascades to every transaction and budget referencing the old name.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}
