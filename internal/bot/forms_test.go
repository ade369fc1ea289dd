package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

func TestMonthlyEntryForm_Record(t *testing.T) {
	f := newMonthlyEntryForm()
	f.year = 2024
	f.month = domain.June
	f.figures[domain.FieldIncome] = 10
	f.figures[domain.FieldExpenses] = 0
	f.figures[domain.FieldProfit] = 10
	f.figures[domain.FieldKPN] = 1

	got, err := f.record(7)
	require.NoError(t, err)
	assert.Equal(t, domain.MonthlyData{CompanyID: 7, Year: 2024, Month: domain.June, Income: 10, Profit: 10, KPN: 1}, got)
}

func TestMonthlyEntryForm_RecordMissing(t *testing.T) {
	f := newMonthlyEntryForm()
	f.month = domain.June
	f.figures[domain.FieldIncome] = 10

	_, err := f.record(7)
	require.ErrorIs(t, err, ErrIncompleteForm)
	assert.Contains(t, err.Error(), "year, expenses, profit, kpn")
}

func TestEntryStepFields(t *testing.T) {
	_, ok := entryYear.field()
	assert.False(t, ok)
	_, ok = entryMonth.field()
	assert.False(t, ok)

	var got []domain.Field
	for s := entryIncome; s <= entryKPN; s++ {
		fld, ok := s.field()
		require.True(t, ok)
		got = append(got, fld)
	}
	assert.Equal(t, domain.Fields, got)
}

func TestFormStepNames(t *testing.T) {
	f := newMonthlyEntryForm()
	assert.Equal(t, "year", f.stepName())
	f.step = entryKPN
	assert.Equal(t, "kpn", f.stepName())

	assert.Equal(t, "field", (&viewOwnForm{step: chartField}).stepName())
	assert.Equal(t, "year", (&retrieveForm{step: retrieveYear}).stepName())
	assert.Equal(t, "name", (&companyCreationForm{}).stepName())
}
