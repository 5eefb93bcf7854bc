package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaycheck_Validate(t *testing.T) {
	valid := Paycheck{
		ID:        uuid.New(),
		Amount:    decimal.NewFromInt(2000),
		Date:      NewDate(2024, time.January, 5),
		Frequency: FrequencyBiweekly,
	}
	assert.NoError(t, valid.Validate())

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.Error(t, zeroAmount.Validate())

	noDate := valid
	noDate.Date = Date{}
	assert.Error(t, noDate.Validate())

	badFrequency := valid
	badFrequency.Frequency = "quarterly"
	assert.Error(t, badFrequency.Validate())

	badSecondDay := valid
	badSecondDay.Frequency = FrequencyBimonthly
	badSecondDay.SecondDayOfMonth = 40
	assert.Error(t, badSecondDay.Validate())

	bimonthly := valid
	bimonthly.Frequency = FrequencyBimonthly
	bimonthly.SecondDayOfMonth = 20
	assert.NoError(t, bimonthly.Validate())
}

func TestPaycheck_Validate_AllFrequencies(t *testing.T) {
	frequencies := []PayFrequency{
		FrequencyWeekly,
		FrequencyBiweekly,
		FrequencyBimonthly,
		FrequencyMonthly,
		FrequencyCustom,
	}

	for _, freq := range frequencies {
		pc := Paycheck{
			Amount:    decimal.NewFromInt(1500),
			Date:      NewDate(2024, time.March, 1),
			Frequency: freq,
		}
		assert.NoError(t, pc.Validate(), "frequency %s should validate", freq)
	}
}
