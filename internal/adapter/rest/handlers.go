package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kpalmer/balancecal-backend/internal/domain"
	"github.com/kpalmer/balancecal-backend/internal/usecase/payperiod"
	"github.com/kpalmer/balancecal-backend/internal/usecase/projector"
)

func (s *Server) handleGetFinanceData(w http.ResponseWriter, r *http.Request) {
	data, err := s.summarySvc.GetFinanceData(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleSaveAccount(w http.ResponseWriter, r *http.Request) {
	var account domain.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := account.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.accountRepo.Save(r.Context(), &account); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.billRepo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var bill domain.RecurringBill
	if err := json.NewDecoder(r.Body).Decode(&bill); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	if err := bill.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.billRepo.Create(r.Context(), &bill); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bill)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var bill domain.RecurringBill
	if err := json.NewDecoder(r.Body).Decode(&bill); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bill.ID = id
	if err := bill.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.billRepo.Update(r.Context(), &bill); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.billRepo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPaychecks(w http.ResponseWriter, r *http.Request) {
	paychecks, err := s.paycheckRepo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paychecks)
}

func (s *Server) handleCreatePaycheck(w http.ResponseWriter, r *http.Request) {
	var paycheck domain.Paycheck
	if err := json.NewDecoder(r.Body).Decode(&paycheck); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if paycheck.ID == uuid.Nil {
		paycheck.ID = uuid.New()
	}
	if err := paycheck.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.paycheckRepo.Create(r.Context(), &paycheck); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, paycheck)
}

func (s *Server) handleUpdatePaycheck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var paycheck domain.Paycheck
	if err := json.NewDecoder(r.Body).Decode(&paycheck); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	paycheck.ID = id
	if err := paycheck.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.paycheckRepo.Update(r.Context(), &paycheck); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paycheck)
}

func (s *Server) handleDeletePaycheck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.paycheckRepo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenseRepo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if err := expense.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.expenseRepo.Create(r.Context(), &expense); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var expense domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	expense.ID = id
	if err := expense.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.expenseRepo.Update(r.Context(), &expense); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.expenseRepo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categoryRepo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := category.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.categoryRepo.Create(r.Context(), &category); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.categoryRepo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPriorities(w http.ResponseWriter, r *http.Request) {
	priorities, err := s.priorityRepo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priorities)
}

func (s *Server) handleSavePriority(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathID(w, r, "billId")
	if !ok {
		return
	}

	var priority domain.BillPriority
	if err := json.NewDecoder(r.Body).Decode(&priority); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	priority.BillID = billID
	if priority.MonthlyExtraPayment.IsNegative() {
		writeError(w, http.StatusBadRequest, "monthly extra payment cannot be negative")
		return
	}

	if err := s.priorityRepo.Save(r.Context(), &priority); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priority)
}

func (s *Server) handleDeletePriority(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathID(w, r, "billId")
	if !ok {
		return
	}
	if err := s.priorityRepo.Delete(r.Context(), billID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCalendar projects a date range. Either month=YYYY-MM (a full 6-week
// grid around that month) or start_date and end_date must be given.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	input, err := s.loadProjectionInput(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		focus, err := domain.ParseDate(monthParam + "-01")
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be in YYYY-MM format")
			return
		}
		input.RangeStart, input.RangeEnd = projector.MonthGridRange(focus.Year, focus.Month)
		input.FocusMonth = focus
	} else {
		start, err := dateParam(r, "start_date")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		end, err := dateParam(r, "end_date")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		input.RangeStart, input.RangeEnd = start, end
	}

	projection, err := projector.ProjectCalendar(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":        projection.Days,
		"payoffState": projection.PayoffState,
	})
}

// handleProjections reports per-month balance envelopes (min, max, end) over
// a months-long horizon starting at start_date.
func (s *Server) handleProjections(w http.ResponseWriter, r *http.Request) {
	start, err := dateParam(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	months, err := intParam(r, "months", 12)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input, err := s.loadProjectionInput(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	input.RangeStart = start.FirstOfMonth()
	input.RangeEnd = start.FirstOfMonth().AddMonths(months).AddDays(-1)

	projection, err := projector.ProjectCalendar(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, projector.MonthlyBalances(projection.Days))
}

func (s *Server) handlePayPeriods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bills, err := s.billRepo.List(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	paychecks, err := s.paycheckRepo.List(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	priorityPtrs, err := s.priorityRepo.List(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	priorities := make([]domain.BillPriority, 0, len(priorityPtrs))
	for _, p := range priorityPtrs {
		priorities = append(priorities, *p)
	}

	today := domain.Today()
	if todayParam := r.URL.Query().Get("today"); todayParam != "" {
		today, err = domain.ParseDate(todayParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	horizon, err := intParam(r, "horizon_months", payperiod.DefaultHorizonMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	periods, err := payperiod.ComputePayPeriods(payperiod.Input{
		Bills:         bills,
		Paychecks:     paychecks,
		Expenses:      expenses,
		Priorities:    priorities,
		Today:         today,
		HorizonMonths: horizon,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, periods)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	start, err := dateParam(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	months, err := intParam(r, "months", 6)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summaries, err := s.summarySvc.MonthlySummary(r.Context(), start, months)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleImportBills(w http.ResponseWriter, r *http.Request) {
	imported, err := s.csvSvc.ImportBills(r.Context(), r.Body)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"imported": len(imported),
		"bills":    imported,
	})
}

func (s *Server) handleExportCalendar(w http.ResponseWriter, r *http.Request) {
	start, err := dateParam(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := dateParam(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=calendar_%s_%s.csv", start, end))

	if err := s.csvSvc.ExportCalendar(r.Context(), w, start, end); err != nil {
		s.logger.WithError(err).Error("calendar export failed")
	}
}

func (s *Server) loadProjectionInput(ctx context.Context) (projector.Input, error) {
	account, err := s.accountRepo.Get(ctx)
	if err != nil {
		return projector.Input{}, err
	}
	bills, err := s.billRepo.List(ctx)
	if err != nil {
		return projector.Input{}, err
	}
	paychecks, err := s.paycheckRepo.List(ctx)
	if err != nil {
		return projector.Input{}, err
	}
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return projector.Input{}, err
	}

	return projector.Input{
		Account:   *account,
		Bills:     bills,
		Paychecks: paychecks,
		Expenses:  expenses,
	}, nil
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func dateParam(r *http.Request, name string) (domain.Date, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return domain.Date{}, fmt.Errorf("%s query parameter is required", name)
	}
	return domain.ParseDate(value)
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}
