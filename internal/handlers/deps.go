package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/financas-app/backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client

	UserSvc         userService
	TransactionSvc  transactionService
	CategorySvc     categoryService
	FixedExpenseSvc fixedExpenseService
	BudgetSvc       budgetService
	GoalSvc         goalService
	ReportSvc       reportService
}
