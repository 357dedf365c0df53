package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/financas-app/backend/internal/dto"
	"github.com/financas-app/backend/internal/middleware"
	"github.com/financas-app/backend/internal/response"
)

type reportService interface {
	MonthReport(ctx context.Context, uid string, year int, month time.Month) (dto.MonthReport, error)
}

type reportHandlers struct {
	ResponseHandler response.ResponseHandler
	ReportSvc       reportService
}

func NewReportHandlers(deps *Deps) *reportHandlers {
	return &reportHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReportSvc:       deps.ReportSvc,
	}
}

func (h *reportHandlers) ReportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.MonthSummary)
	return r
}

func (h *reportHandlers) MonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthYear(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	report, err := h.ReportSvc.MonthReport(r.Context(), uid, year, month)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, report)
}
