// Package rest exposes the finance engine over HTTP/JSON. Every route sits
// under /api and requires the bearer API token; errors map to JSON bodies
// with appropriate status codes.
package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/kpalmer/balancecal-backend/internal/domain"
	"github.com/kpalmer/balancecal-backend/internal/usecase/csvport"
	"github.com/kpalmer/balancecal-backend/internal/usecase/summary"
)

// Server wires the HTTP routes to the use cases and repositories
type Server struct {
	logger *logrus.Logger
	token  string

	accountRepo  domain.AccountRepository
	billRepo     domain.BillRepository
	paycheckRepo domain.PaycheckRepository
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
	priorityRepo domain.PriorityRepository

	summarySvc *summary.Service
	csvSvc     *csvport.Service
}

// NewServer creates a new REST server
func NewServer(
	logger *logrus.Logger,
	token string,
	accountRepo domain.AccountRepository,
	billRepo domain.BillRepository,
	paycheckRepo domain.PaycheckRepository,
	expenseRepo domain.ExpenseRepository,
	categoryRepo domain.CategoryRepository,
	priorityRepo domain.PriorityRepository,
) *Server {
	return &Server{
		logger:       logger,
		token:        token,
		accountRepo:  accountRepo,
		billRepo:     billRepo,
		paycheckRepo: paycheckRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		priorityRepo: priorityRepo,
		summarySvc:   summary.NewService(accountRepo, billRepo, paycheckRepo, expenseRepo, categoryRepo),
		csvSvc:       csvport.NewService(accountRepo, billRepo, paycheckRepo, expenseRepo),
	}
}

// Router builds the route table
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(RequestLogger(s.logger))
	api.Use(TokenAuth(s.token))

	api.HandleFunc("/finance-data", s.handleGetFinanceData).Methods("GET")
	api.HandleFunc("/account", s.handleSaveAccount).Methods("PUT")

	api.HandleFunc("/bills", s.handleListBills).Methods("GET")
	api.HandleFunc("/bills", s.handleCreateBill).Methods("POST")
	api.HandleFunc("/bills/{id}", s.handleUpdateBill).Methods("PUT")
	api.HandleFunc("/bills/{id}", s.handleDeleteBill).Methods("DELETE")

	api.HandleFunc("/paychecks", s.handleListPaychecks).Methods("GET")
	api.HandleFunc("/paychecks", s.handleCreatePaycheck).Methods("POST")
	api.HandleFunc("/paychecks/{id}", s.handleUpdatePaycheck).Methods("PUT")
	api.HandleFunc("/paychecks/{id}", s.handleDeletePaycheck).Methods("DELETE")

	api.HandleFunc("/expenses", s.handleListExpenses).Methods("GET")
	api.HandleFunc("/expenses", s.handleCreateExpense).Methods("POST")
	api.HandleFunc("/expenses/{id}", s.handleUpdateExpense).Methods("PUT")
	api.HandleFunc("/expenses/{id}", s.handleDeleteExpense).Methods("DELETE")

	api.HandleFunc("/categories", s.handleListCategories).Methods("GET")
	api.HandleFunc("/categories", s.handleCreateCategory).Methods("POST")
	api.HandleFunc("/categories/{id}", s.handleDeleteCategory).Methods("DELETE")

	api.HandleFunc("/priorities", s.handleListPriorities).Methods("GET")
	api.HandleFunc("/priorities/{billId}", s.handleSavePriority).Methods("PUT")
	api.HandleFunc("/priorities/{billId}", s.handleDeletePriority).Methods("DELETE")

	api.HandleFunc("/calendar", s.handleCalendar).Methods("GET")
	api.HandleFunc("/projections", s.handleProjections).Methods("GET")
	api.HandleFunc("/payperiods", s.handlePayPeriods).Methods("GET")
	api.HandleFunc("/summary", s.handleMonthlySummary).Methods("GET")

	api.HandleFunc("/import/bills", s.handleImportBills).Methods("POST")
	api.HandleFunc("/export/calendar", s.handleExportCalendar).Methods("GET")

	return r
}
