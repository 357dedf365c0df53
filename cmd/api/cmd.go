package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/financas-app/backend/internal/bootstrap"
	"github.com/financas-app/backend/internal/config"
	"github.com/financas-app/backend/internal/handlers"
	"github.com/financas-app/backend/internal/response"
	"github.com/financas-app/backend/internal/router"
	"github.com/financas-app/backend/internal/services"
	"github.com/financas-app/backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	cstore := store.NewCategoryStore(bs.Firestore)
	festore := store.NewFixedExpenseStore(bs.Firestore)
	bstore := store.NewBudgetStore(bs.Firestore)
	gstore := store.NewGoalStore(bs.Firestore)

	// services
	cserv := services.NewCategoryService(cstore)
	userv := services.NewUserService(ustore, cserv)
	tserv := services.NewTransactionService(tstore, festore)
	feserv := services.NewFixedExpenseService(festore)
	bserv := services.NewBudgetService(bstore, tstore)
	gserv := services.NewGoalService(gstore)
	rserv := services.NewReportService(tserv, cstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.TransactionSvc = tserv
	deps.CategorySvc = cserv
	deps.FixedExpenseSvc = feserv
	deps.BudgetSvc = bserv
	deps.GoalSvc = gserv
	deps.ReportSvc = rserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
