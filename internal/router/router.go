package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/financas-app/backend/internal/handlers"
	"github.com/financas-app/backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	auth := middleware.NewMiddleware(deps.Firebase)
	logm := middleware.NewLoggerMiddleware(deps.Log)

	r.Use(chimiddleware.RequestID)
	r.Use(logm.LoggerMiddleware)
	r.Use(auth.FirebaseAuth)

	ush := handlers.NewUserHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	cath := handlers.NewCategoryHandlers(deps)
	feh := handlers.NewFixedExpenseHandlers(deps)
	bh := handlers.NewBudgetHandlers(deps)
	gh := handlers.NewGoalHandlers(deps)
	rph := handlers.NewReportHandlers(deps)

	r.Mount("/users", ush.UserRoutes())
	r.Mount("/transactions", txh.TransactionRoutes())
	r.Mount("/categories", cath.CategoryRoutes())
	r.Mount("/fixed-expenses", feh.FixedExpenseRoutes())
	r.Mount("/budgets", bh.BudgetRoutes())
	r.Mount("/goals", gh.GoalRoutes())
	r.Mount("/reports", rph.ReportRoutes())
	return r
}
