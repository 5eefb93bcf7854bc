package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

const testToken = "test-token"

// memStore backs the in-memory repository fakes used by the handler tests
type memStore struct {
	account    *domain.Account
	bills      []*domain.RecurringBill
	paychecks  []*domain.Paycheck
	expenses   []*domain.Expense
	categories []*domain.Category
	priorities []*domain.BillPriority
}

type memAccountRepo struct{ store *memStore }

func (r *memAccountRepo) Get(ctx context.Context) (*domain.Account, error) {
	if r.store.account == nil {
		return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
	}
	return r.store.account, nil
}

func (r *memAccountRepo) Save(ctx context.Context, account *domain.Account) error {
	r.store.account = account
	return nil
}

type memBillRepo struct{ store *memStore }

func (r *memBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringBill, error) {
	for _, b := range r.store.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("bill %s: %w", id, domain.ErrNotFound)
}

func (r *memBillRepo) List(ctx context.Context) ([]*domain.RecurringBill, error) {
	return r.store.bills, nil
}

func (r *memBillRepo) Create(ctx context.Context, bill *domain.RecurringBill) error {
	r.store.bills = append(r.store.bills, bill)
	return nil
}

func (r *memBillRepo) Update(ctx context.Context, bill *domain.RecurringBill) error {
	for i, b := range r.store.bills {
		if b.ID == bill.ID {
			r.store.bills[i] = bill
			return nil
		}
	}
	return fmt.Errorf("bill %s: %w", bill.ID, domain.ErrNotFound)
}

func (r *memBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, b := range r.store.bills {
		if b.ID == id {
			r.store.bills = append(r.store.bills[:i], r.store.bills[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bill %s: %w", id, domain.ErrNotFound)
}

type memPaycheckRepo struct{ store *memStore }

func (r *memPaycheckRepo) List(ctx context.Context) ([]*domain.Paycheck, error) {
	return r.store.paychecks, nil
}

func (r *memPaycheckRepo) Create(ctx context.Context, paycheck *domain.Paycheck) error {
	r.store.paychecks = append(r.store.paychecks, paycheck)
	return nil
}

func (r *memPaycheckRepo) Update(ctx context.Context, paycheck *domain.Paycheck) error {
	for i, p := range r.store.paychecks {
		if p.ID == paycheck.ID {
			r.store.paychecks[i] = paycheck
			return nil
		}
	}
	return fmt.Errorf("paycheck %s: %w", paycheck.ID, domain.ErrNotFound)
}

func (r *memPaycheckRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, p := range r.store.paychecks {
		if p.ID == id {
			r.store.paychecks = append(r.store.paychecks[:i], r.store.paychecks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("paycheck %s: %w", id, domain.ErrNotFound)
}

type memExpenseRepo struct{ store *memStore }

func (r *memExpenseRepo) List(ctx context.Context) ([]*domain.Expense, error) {
	return r.store.expenses, nil
}

func (r *memExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	r.store.expenses = append(r.store.expenses, expense)
	return nil
}

func (r *memExpenseRepo) Update(ctx context.Context, expense *domain.Expense) error {
	for i, e := range r.store.expenses {
		if e.ID == expense.ID {
			r.store.expenses[i] = expense
			return nil
		}
	}
	return fmt.Errorf("expense %s: %w", expense.ID, domain.ErrNotFound)
}

func (r *memExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.store.expenses {
		if e.ID == id {
			r.store.expenses = append(r.store.expenses[:i], r.store.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
}

type memCategoryRepo struct{ store *memStore }

func (r *memCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range r.store.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", name, domain.ErrNotFound)
}

func (r *memCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	return r.store.categories, nil
}

func (r *memCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	r.store.categories = append(r.store.categories, category)
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, c := range r.store.categories {
		if c.ID == id {
			r.store.categories = append(r.store.categories[:i], r.store.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
}

type memPriorityRepo struct{ store *memStore }

func (r *memPriorityRepo) List(ctx context.Context) ([]*domain.BillPriority, error) {
	return r.store.priorities, nil
}

func (r *memPriorityRepo) Save(ctx context.Context, priority *domain.BillPriority) error {
	for i, p := range r.store.priorities {
		if p.BillID == priority.BillID {
			r.store.priorities[i] = priority
			return nil
		}
	}
	r.store.priorities = append(r.store.priorities, priority)
	return nil
}

func (r *memPriorityRepo) Delete(ctx context.Context, billID uuid.UUID) error {
	for i, p := range r.store.priorities {
		if p.BillID == billID {
			r.store.priorities = append(r.store.priorities[:i], r.store.priorities[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bill priority %s: %w", billID, domain.ErrNotFound)
}

func newTestServer() (http.Handler, *memStore) {
	store := &memStore{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv := NewServer(
		logger,
		testToken,
		&memAccountRepo{store: store},
		&memBillRepo{store: store},
		&memPaycheckRepo{store: store},
		&memExpenseRepo{store: store},
		&memCategoryRepo{store: store},
		&memPriorityRepo{store: store},
	)
	return srv.Router(), store
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestFinanceData_NoAccount(t *testing.T) {
	handler, _ := newTestServer()

	rec := doRequest(t, handler, http.MethodGet, "/api/finance-data", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountRoundTrip(t *testing.T) {
	handler, _ := newTestServer()

	account := domain.Account{
		StartingBalance: decimal.NewFromInt(1000),
		CurrentBalance:  decimal.NewFromInt(1000),
		BalanceAsOfDate: domain.NewDate(2024, time.January, 1),
	}
	rec := doRequest(t, handler, http.MethodPut, "/api/account", account)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/finance-data", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Account domain.Account `json:"account"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.True(t, data.Account.StartingBalance.Equal(decimal.NewFromInt(1000)))
}

func TestBillCRUD(t *testing.T) {
	handler, store := newTestServer()

	bill := domain.RecurringBill{
		Name:   "Rent",
		Amount: decimal.NewFromInt(1200),
		DueDay: 1,
	}
	rec := doRequest(t, handler, http.MethodPost, "/api/bills", bill)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.RecurringBill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)

	created.Amount = decimal.NewFromInt(1250)
	rec = doRequest(t, handler, http.MethodPut, "/api/bills/"+created.ID.String(), created)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.bills[0].Amount.Equal(decimal.NewFromInt(1250)))

	rec = doRequest(t, handler, http.MethodDelete, "/api/bills/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.bills)
}

func TestBillCreate_ValidationError(t *testing.T) {
	handler, _ := newTestServer()

	bill := domain.RecurringBill{Name: "", Amount: decimal.NewFromInt(10), DueDay: 1}
	rec := doRequest(t, handler, http.MethodPost, "/api/bills", bill)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillUpdate_NotFound(t *testing.T) {
	handler, _ := newTestServer()

	bill := domain.RecurringBill{Name: "Ghost", Amount: decimal.NewFromInt(10), DueDay: 1}
	rec := doRequest(t, handler, http.MethodPut, "/api/bills/"+uuid.NewString(), bill)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendar_MonthGrid(t *testing.T) {
	handler, store := newTestServer()

	store.account = &domain.Account{
		StartingBalance: decimal.NewFromInt(500),
		CurrentBalance:  decimal.NewFromInt(500),
		BalanceAsOfDate: domain.NewDate(2024, time.January, 1),
	}
	store.bills = []*domain.RecurringBill{
		{ID: uuid.New(), Name: "Rent", Amount: decimal.NewFromInt(100), DueDay: 15},
	}

	rec := doRequest(t, handler, http.MethodGet, "/api/calendar?month=2024-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Days []struct {
			Date           domain.Date `json:"date"`
			IsCurrentMonth bool        `json:"isCurrentMonth"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Days, 42)
	assert.Equal(t, "2024-01-28", resp.Days[0].Date.String())
	assert.False(t, resp.Days[0].IsCurrentMonth)
}

func TestCalendar_MissingRange(t *testing.T) {
	handler, store := newTestServer()

	store.account = &domain.Account{
		StartingBalance: decimal.NewFromInt(500),
		CurrentBalance:  decimal.NewFromInt(500),
		BalanceAsOfDate: domain.NewDate(2024, time.January, 1),
	}

	rec := doRequest(t, handler, http.MethodGet, "/api/calendar", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayPeriods(t *testing.T) {
	handler, store := newTestServer()

	store.paychecks = []*domain.Paycheck{
		{ID: uuid.New(), Amount: decimal.NewFromInt(2000), Date: domain.NewDate(2024, time.January, 5), Frequency: domain.FrequencyBiweekly},
	}

	rec := doRequest(t, handler, http.MethodGet, "/api/payperiods?today=2024-01-01&horizon_months=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var periods []struct {
		StartDate   domain.Date     `json:"startDate"`
		TotalIncome decimal.Decimal `json:"totalIncome"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &periods))
	require.NotEmpty(t, periods)
	assert.Equal(t, "2024-01-05", periods[0].StartDate.String())
	assert.True(t, periods[0].TotalIncome.Equal(decimal.NewFromInt(2000)))
}

func TestImportBills(t *testing.T) {
	handler, store := newTestServer()

	csv := "Name,Due Date,Amount,Remaining\nRent,1,1200,\n"
	req := httptest.NewRequest(http.MethodPost, "/api/import/bills", strings.NewReader(csv))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.bills, 1)
	assert.Equal(t, "Rent", store.bills[0].Name)
}

func TestExportCalendar(t *testing.T) {
	handler, store := newTestServer()

	store.account = &domain.Account{
		StartingBalance: decimal.NewFromInt(500),
		CurrentBalance:  decimal.NewFromInt(500),
		BalanceAsOfDate: domain.NewDate(2024, time.January, 1),
	}

	rec := doRequest(t, handler, http.MethodGet, "/api/export/calendar?start_date=2024-01-01&end_date=2024-01-31", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "MONTHLY SUMMARY")
	assert.Contains(t, rec.Body.String(), "DAILY BREAKDOWN")
}

func TestPriorities_SaveAndList(t *testing.T) {
	handler, _ := newTestServer()

	billID := uuid.New()
	priority := domain.BillPriority{MonthlyExtraPayment: decimal.NewFromInt(200)}
	rec := doRequest(t, handler, http.MethodPut, "/api/priorities/"+billID.String(), priority)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/priorities", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var priorities []domain.BillPriority
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &priorities))
	require.Len(t, priorities, 1)
	assert.Equal(t, billID, priorities[0].BillID)
}

func TestPriorities_NegativeRejected(t *testing.T) {
	handler, _ := newTestServer()

	priority := domain.BillPriority{MonthlyExtraPayment: decimal.NewFromInt(-5)}
	rec := doRequest(t, handler, http.MethodPut, "/api/priorities/"+uuid.NewString(), priority)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
