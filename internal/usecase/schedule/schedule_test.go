package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

func date(year int, month time.Month, day int) domain.Date {
	return domain.NewDate(year, month, day)
}

func TestPaycheckOccurrences_Biweekly_ExactFourteenDayIntervals(t *testing.T) {
	pc := &domain.Paycheck{
		ID:        uuid.New(),
		Amount:    decimal.NewFromInt(2000),
		Date:      date(2024, time.January, 5),
		Frequency: domain.FrequencyBiweekly,
	}

	until := date(2025, time.January, 5)
	occurrences := PaycheckOccurrences(pc, until)

	require.NotEmpty(t, occurrences)
	assert.Equal(t, "2024-01-05", occurrences[0].String())
	assert.Equal(t, "2024-01-19", occurrences[1].String())
	assert.Equal(t, "2024-02-02", occurrences[2].String())

	// Every consecutive pair is exactly 14 days apart across the full year.
	for i := 1; i < len(occurrences); i++ {
		assert.Equal(t, occurrences[i-1].AddDays(14), occurrences[i],
			"occurrence %d should be 14 days after the previous", i)
	}

	// One year of biweekly paychecks: anchor plus 26 steps.
	assert.Len(t, occurrences, 27)
}

func TestPaycheckOccurrences_Weekly(t *testing.T) {
	pc := &domain.Paycheck{
		Amount:    decimal.NewFromInt(500),
		Date:      date(2024, time.March, 1),
		Frequency: domain.FrequencyWeekly,
	}

	occurrences := PaycheckOccurrences(pc, date(2024, time.March, 31))

	require.Len(t, occurrences, 5)
	assert.Equal(t, "2024-03-08", occurrences[1].String())
	assert.Equal(t, "2024-03-29", occurrences[4].String())
}

func TestPaycheckOccurrences_Monthly_PreservesDayOfMonth(t *testing.T) {
	pc := &domain.Paycheck{
		Amount:    decimal.NewFromInt(3000),
		Date:      date(2024, time.January, 20),
		Frequency: domain.FrequencyMonthly,
	}

	occurrences := PaycheckOccurrences(pc, date(2024, time.June, 30))

	require.Len(t, occurrences, 6)
	for i, occ := range occurrences {
		assert.Equal(t, 20, occ.Day, "occurrence %d should stay on the 20th", i)
	}
}

func TestPaycheckOccurrences_Bimonthly_DefaultMidpoint(t *testing.T) {
	pc := &domain.Paycheck{
		Amount:    decimal.NewFromInt(1500),
		Date:      date(2024, time.January, 1),
		Frequency: domain.FrequencyBimonthly,
	}

	occurrences := PaycheckOccurrences(pc, date(2024, time.March, 31))

	// Anchor on the 1st, then alternating 15th / 1st of next month.
	want := []string{
		"2024-01-01", "2024-01-15", "2024-02-01",
		"2024-02-15", "2024-03-01", "2024-03-15",
	}
	require.Len(t, occurrences, len(want))
	for i, w := range want {
		assert.Equal(t, w, occurrences[i].String())
	}
}

func TestPaycheckOccurrences_Bimonthly_ConfiguredSecondDay(t *testing.T) {
	pc := &domain.Paycheck{
		Amount:           decimal.NewFromInt(1500),
		Date:             date(2024, time.January, 1),
		Frequency:        domain.FrequencyBimonthly,
		SecondDayOfMonth: 20,
	}

	occurrences := PaycheckOccurrences(pc, date(2024, time.February, 29))

	// The mid-month payday uses the configured day; the branch point stays
	// at day 15, so the 20th steps straight to the first of the next month.
	want := []string{"2024-01-01", "2024-01-20", "2024-02-01", "2024-02-20"}
	require.Len(t, occurrences, len(want))
	for i, w := range want {
		assert.Equal(t, w, occurrences[i].String())
	}
}

func TestPaycheckOccurrences_Bimonthly_NonAdvancingSecondDay(t *testing.T) {
	// A configured second day at or before the current day must not stall
	// the expansion.
	pc := &domain.Paycheck{
		Amount:           decimal.NewFromInt(1500),
		Date:             date(2024, time.January, 10),
		Frequency:        domain.FrequencyBimonthly,
		SecondDayOfMonth: 10,
	}

	occurrences := PaycheckOccurrences(pc, date(2024, time.March, 31))

	require.NotEmpty(t, occurrences)
	for i := 1; i < len(occurrences); i++ {
		assert.True(t, occurrences[i].After(occurrences[i-1]),
			"occurrences must strictly advance")
	}
}

func TestPaycheckOccurrences_Custom_SingleOccurrence(t *testing.T) {
	pc := &domain.Paycheck{
		Amount:    decimal.NewFromInt(800),
		Date:      date(2024, time.February, 10),
		Frequency: domain.FrequencyCustom,
	}

	occurrences := PaycheckOccurrences(pc, date(2025, time.February, 10))

	require.Len(t, occurrences, 1)
	assert.Equal(t, "2024-02-10", occurrences[0].String())
}

func TestPaycheckOccurrences_AnchorAfterHorizon(t *testing.T) {
	pc := &domain.Paycheck{
		Amount:    decimal.NewFromInt(800),
		Date:      date(2024, time.June, 1),
		Frequency: domain.FrequencyWeekly,
	}

	assert.Empty(t, PaycheckOccurrences(pc, date(2024, time.May, 1)))
}

func TestBillDueOn_MatchesDueDay(t *testing.T) {
	bill := &domain.RecurringBill{
		ID:     uuid.New(),
		Name:   "Electric",
		Amount: decimal.NewFromInt(100),
		DueDay: 15,
	}
	paid := PayoffSnapshot([]*domain.RecurringBill{bill})

	assert.True(t, BillDueOn(bill, date(2024, time.January, 15), paid))
	assert.False(t, BillDueOn(bill, date(2024, time.January, 14), paid))
	assert.False(t, BillDueOn(bill, date(2024, time.February, 16), paid))
}

func TestBillDueOn_NoMonthEndClamping(t *testing.T) {
	bill := &domain.RecurringBill{
		ID:     uuid.New(),
		Name:   "Storage",
		Amount: decimal.NewFromInt(50),
		DueDay: 31,
	}
	paid := PayoffSnapshot([]*domain.RecurringBill{bill})

	// February has no 31st: the bill has no occurrence that month at all.
	for day := 1; day <= 29; day++ {
		assert.False(t, BillDueOn(bill, date(2024, time.February, day), paid))
	}
	assert.True(t, BillDueOn(bill, date(2024, time.March, 31), paid))
}

func TestBillDueOn_PaidOffExcluded(t *testing.T) {
	total := decimal.NewFromInt(600)
	bill := &domain.RecurringBill{
		ID:         uuid.New(),
		Name:       "Loan",
		Amount:     decimal.NewFromInt(200),
		DueDay:     1,
		Total:      &total,
		AmountPaid: decimal.NewFromInt(600),
	}
	paid := PayoffSnapshot([]*domain.RecurringBill{bill})

	assert.False(t, BillDueOn(bill, date(2024, time.April, 1), paid))

	// Still matching while the snapshot is below the total.
	paid[bill.ID] = decimal.NewFromInt(400)
	assert.True(t, BillDueOn(bill, date(2024, time.April, 1), paid))
}

func TestPaycheckOccurrenceIndex_PreservesInputOrderOnSameDay(t *testing.T) {
	first := &domain.Paycheck{
		ID:        uuid.New(),
		Amount:    decimal.NewFromInt(1000),
		Date:      date(2024, time.January, 5),
		Frequency: domain.FrequencyCustom,
	}
	second := &domain.Paycheck{
		ID:        uuid.New(),
		Amount:    decimal.NewFromInt(2000),
		Date:      date(2024, time.January, 5),
		Frequency: domain.FrequencyCustom,
	}

	index := PaycheckOccurrenceIndex([]*domain.Paycheck{first, second}, date(2024, time.January, 31))

	sameDay := index[date(2024, time.January, 5)]
	require.Len(t, sameDay, 2)
	assert.Equal(t, first.ID, sameDay[0].ID)
	assert.Equal(t, second.ID, sameDay[1].ID)
}

func TestExpensesOn_And_InRange(t *testing.T) {
	groceries := &domain.Expense{
		ID:     uuid.New(),
		Name:   "Groceries",
		Amount: decimal.NewFromInt(75),
		Date:   date(2024, time.January, 10),
	}
	carRepair := &domain.Expense{
		ID:     uuid.New(),
		Name:   "Car repair",
		Amount: decimal.NewFromInt(450),
		Date:   date(2024, time.January, 25),
	}
	expenses := []*domain.Expense{groceries, carRepair}

	onDay := ExpensesOn(expenses, date(2024, time.January, 10))
	require.Len(t, onDay, 1)
	assert.Equal(t, groceries.ID, onDay[0].ID)

	assert.Empty(t, ExpensesOn(expenses, date(2024, time.January, 11)))

	inRange := ExpensesInRange(expenses, date(2024, time.January, 1), date(2024, time.January, 20))
	require.Len(t, inRange, 1)
	assert.Equal(t, groceries.ID, inRange[0].ID)

	all := ExpensesInRange(expenses, date(2024, time.January, 1), date(2024, time.January, 31))
	assert.Len(t, all, 2)
}
