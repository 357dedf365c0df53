package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/middleware"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/internal/response"
)

type budgetService interface {
	Create(ctx context.Context, uid string, req dto.SetBudgetRequest) (*models.Budget, error)
	UpdateLimit(ctx context.Context, uid, budgetID string, limit float64) (*models.Budget, error)
	ListProgress(ctx context.Context, uid string, month, year int) ([]dto.BudgetProgress, error)
	Delete(ctx context.Context, uid, budgetID string) error
}

type budgetHandlers struct {
	ResponseHandler response.ResponseHandler
	BudgetSvc       budgetService
}

func NewBudgetHandlers(deps *Deps) *budgetHandlers {
	return &budgetHandlers{
		ResponseHandler: deps.ResponseHandler,
		BudgetSvc:       deps.BudgetSvc,
	}
}

func (h *budgetHandlers) BudgetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListProgress)
	r.Post("/", h.Create)
	r.Put("/{budgetId}", h.UpdateLimit)
	r.Delete("/{budgetId}", h.Delete)
	return r
}

func (h *budgetHandlers) ListProgress(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthYear(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	progress, err := h.BudgetSvc.ListProgress(r.Context(), uid, int(month), year)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, progress)
}

func (h *budgetHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	b, err := h.BudgetSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, b)
}

func (h *budgetHandlers) UpdateLimit(w http.ResponseWriter, r *http.Request) {
	budgetID := chi.URLParam(r, "budgetId")
	var req struct {
		LimitAmount float64 `json:"limitAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	b, err := h.BudgetSvc.UpdateLimit(r.Context(), uid, budgetID, req.LimitAmount)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, b)
}

func (h *budgetHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	budgetID := chi.URLParam(r, "budgetId")
	uid := middleware.UID(r.Context())
	if err := h.BudgetSvc.Delete(r.Context(), uid, budgetID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
