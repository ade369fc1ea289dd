package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

// ErrIncompleteForm means a form reached its last step without every value
// collected. Steps only advance after storing a value, so this is a bug.
var ErrIncompleteForm = errors.New("form finalized with missing values")

// form is the active form of a conversation. Each variant holds only the
// values its own sequence collects.
type form interface {
	name() string
	stepName() string
}

type companyCreationForm struct{}

func (*companyCreationForm) name() string     { return "company_creation" }
func (*companyCreationForm) stepName() string { return "name" }

type entryStep int

const (
	entryYear entryStep = iota
	entryMonth
	entryIncome
	entryExpenses
	entryProfit
	entryKPN
)

var entryStepNames = [...]string{"year", "month", "income", "expenses", "profit", "kpn"}

// field is the figure collected at a numeric step.
func (s entryStep) field() (domain.Field, bool) {
	switch s {
	case entryIncome:
		return domain.FieldIncome, true
	case entryExpenses:
		return domain.FieldExpenses, true
	case entryProfit:
		return domain.FieldProfit, true
	case entryKPN:
		return domain.FieldKPN, true
	}
	return 0, false
}

type monthlyEntryForm struct {
	step    entryStep
	year    int
	month   domain.Month
	figures map[domain.Field]int64
}

func newMonthlyEntryForm() *monthlyEntryForm {
	return &monthlyEntryForm{step: entryYear, figures: make(map[domain.Field]int64, len(domain.Fields))}
}

func (*monthlyEntryForm) name() string       { return "monthly_entry" }
func (f *monthlyEntryForm) stepName() string { return entryStepNames[f.step] }

// record assembles the collected values for the company.
func (f *monthlyEntryForm) record(companyID int64) (domain.MonthlyData, error) {
	var missing []string
	if f.year == 0 {
		missing = append(missing, "year")
	}
	if f.month == "" {
		missing = append(missing, "month")
	}
	for _, fld := range domain.Fields {
		if _, ok := f.figures[fld]; !ok {
			missing = append(missing, fld.String())
		}
	}
	if len(missing) > 0 {
		return domain.MonthlyData{}, fmt.Errorf("%w: %s", ErrIncompleteForm, strings.Join(missing, ", "))
	}
	return domain.MonthlyData{
		CompanyID: companyID,
		Year:      f.year,
		Month:     f.month,
		Income:    f.figures[domain.FieldIncome],
		Expenses:  f.figures[domain.FieldExpenses],
		Profit:    f.figures[domain.FieldProfit],
		KPN:       f.figures[domain.FieldKPN],
	}, nil
}

type chartStep int

const (
	chartYear chartStep = iota
	chartField
)

func (s chartStep) String() string {
	if s == chartField {
		return "field"
	}
	return "year"
}

// viewOwnForm charts the caller's own company.
type viewOwnForm struct {
	step chartStep
	year int
}

func (*viewOwnForm) name() string       { return "view_own" }
func (f *viewOwnForm) stepName() string { return f.step.String() }

type retrieveStep int

const (
	retrieveName retrieveStep = iota
	retrieveYear
	retrieveField
)

var retrieveStepNames = [...]string{"name", "year", "field"}

// retrieveForm charts any company picked by name.
type retrieveForm struct {
	step    retrieveStep
	company domain.Company
	year    int
}

func (*retrieveForm) name() string       { return "retrieve_other" }
func (f *retrieveForm) stepName() string { return retrieveStepNames[f.step] }
