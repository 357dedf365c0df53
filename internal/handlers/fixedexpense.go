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

type fixedExpenseService interface {
	Create(ctx context.Context, uid string, req dto.CreateFixedExpenseRequest) (*models.FixedExpense, error)
	List(ctx context.Context, uid string) ([]models.FixedExpense, error)
	Update(ctx context.Context, uid, id string, req dto.UpdateFixedExpenseRequest) (*models.FixedExpense, error)
	Delete(ctx context.Context, uid, id string) error
}

type fixedExpenseHandlers struct {
	ResponseHandler response.ResponseHandler
	FixedExpenseSvc fixedExpenseService
}

func NewFixedExpenseHandlers(deps *Deps) *fixedExpenseHandlers {
	return &fixedExpenseHandlers{
		ResponseHandler: deps.ResponseHandler,
		FixedExpenseSvc: deps.FixedExpenseSvc,
	}
}

func (h *fixedExpenseHandlers) FixedExpenseRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{fixedExpenseId}", h.Update)
	r.Delete("/{fixedExpenseId}", h.Delete)
	return r
}

func (h *fixedExpenseHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	fes, err := h.FixedExpenseSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, fes)
}

func (h *fixedExpenseHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFixedExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	fe, err := h.FixedExpenseSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, fe)
}

func (h *fixedExpenseHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fixedExpenseId")
	var req dto.UpdateFixedExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	fe, err := h.FixedExpenseSvc.Update(r.Context(), uid, id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, fe)
}

func (h *fixedExpenseHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fixedExpenseId")
	uid := middleware.UID(r.Context())
	if err := h.FixedExpenseSvc.Delete(r.Context(), uid, id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
