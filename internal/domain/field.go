package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownField = errors.New("unknown field")

// Field is one of the four numeric columns of a monthly record.
type Field int

const (
	FieldIncome Field = iota + 1
	FieldExpenses
	FieldProfit
	FieldKPN
)

var Fields = []Field{FieldIncome, FieldExpenses, FieldProfit, FieldKPN}

// ParseField accepts the field name in any letter case ("Income", "KPN", "kpn").
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return FieldIncome, nil
	case "expenses":
		return FieldExpenses, nil
	case "profit":
		return FieldProfit, nil
	case "kpn":
		return FieldKPN, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

func (f Field) String() string {
	switch f {
	case FieldIncome:
		return "income"
	case FieldExpenses:
		return "expenses"
	case FieldProfit:
		return "profit"
	case FieldKPN:
		return "kpn"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Label is the text shown on keyboards.
func (f Field) Label() string {
	switch f {
	case FieldIncome:
		return "Income"
	case FieldExpenses:
		return "Expenses"
	case FieldProfit:
		return "Profit"
	case FieldKPN:
		return "KPN"
	}
	return f.String()
}

// Column is the SQL column backing the field. Only the closed set above maps
// to a column; anything else is rejected before it can reach a query.
func (f Field) Column() (string, error) {
	switch f {
	case FieldIncome:
		return "income", nil
	case FieldExpenses:
		return "expenses", nil
	case FieldProfit:
		return "profit", nil
	case FieldKPN:
		return "kpn", nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownField, int(f))
}

// Value reads the field from a record.
func (f Field) Value(d MonthlyData) (int64, error) {
	switch f {
	case FieldIncome:
		return d.Income, nil
	case FieldExpenses:
		return d.Expenses, nil
	case FieldProfit:
		return d.Profit, nil
	case FieldKPN:
		return d.KPN, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownField, int(f))
}
