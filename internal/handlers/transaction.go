package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/errs"
	"github.com/financas-app/backend/internal/middleware"
	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/internal/response"
)

type transactionService interface {
	Create(ctx context.Context, uid string, req dto.CreateTransactionRequest) ([]models.Transaction, error)
	MonthLedger(ctx context.Context, uid string, year int, month time.Month) ([]models.Transaction, error)
	WatchLedger(ctx context.Context, uid string, year int, month time.Month) (<-chan []models.Transaction, context.CancelFunc)
	Update(ctx context.Context, uid, txID string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, uid, txID string) error
	ListGroup(ctx context.Context, uid, groupID string) ([]models.Transaction, error)
	UpdateGroup(ctx context.Context, uid, groupID string, req dto.UpdateGroupRequest) error
	DeleteGroup(ctx context.Context, uid, groupID string) error
	PayFixed(ctx context.Context, uid, fixedExpenseID string, req dto.PayFixedRequest) (*models.Transaction, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.MonthLedger)
	r.Post("/", h.Create)
	r.Get("/stream", h.StreamLedger)
	r.Get("/group/{groupId}", h.ListGroup)
	r.Put("/group/{groupId}", h.UpdateGroup)
	r.Delete("/group/{groupId}", h.DeleteGroup)
	r.Post("/fixed/{fixedExpenseId}/pay", h.PayFixed)
	r.Put("/{transactionId}", h.Update)
	r.Delete("/{transactionId}", h.Delete)
	return r
}

// monthYear parses the ?month=&year= pair every ledger-scoped endpoint
// takes, defaulting to the current month.
func monthYear(r *http.Request) (int, time.Month, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			return 0, 0, errs.NewValidationError("invalid year")
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, errs.NewValidationError("month must be between 1 and 12")
		}
		month = time.Month(m)
	}
	return year, month, nil
}

func (h *transactionHandlers) MonthLedger(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthYear(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	ledger, err := h.TransactionSvc.MonthLedger(r.Context(), uid, year, month)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, ledger)
}

func (h *transactionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	txs, err := h.TransactionSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, txs)
}

func (h *transactionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionId")
	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.Update(r.Context(), uid, txID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	if err := h.TransactionSvc.Delete(r.Context(), uid, txID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *transactionHandlers) ListGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	uid := middleware.UID(r.Context())
	members, err := h.TransactionSvc.ListGroup(r.Context(), uid, groupID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, members)
}

func (h *transactionHandlers) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	var req dto.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	if err := h.TransactionSvc.UpdateGroup(r.Context(), uid, groupID, req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *transactionHandlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupId")
	uid := middleware.UID(r.Context())
	if err := h.TransactionSvc.DeleteGroup(r.Context(), uid, groupID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *transactionHandlers) PayFixed(w http.ResponseWriter, r *http.Request) {
	fixedExpenseID := chi.URLParam(r, "fixedExpenseId")
	var req dto.PayFixedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid request body"))
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.PayFixed(r.Context(), uid, fixedExpenseID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}
