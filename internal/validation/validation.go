package validation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

const (
	MinCompanyName = 2
	MaxCompanyName = 50

	MinYear = 1900
	MaxYear = 2100

	OK = "OK"

	MsgNameTaken = "This company name is already taken. Please enter a different name."
)

func CompanyName(name string) (bool, string) {
	n := utf8.RuneCountInString(name)
	if n < MinCompanyName {
		return false, "Company name is too short. Please enter a valid name."
	}
	if n > MaxCompanyName {
		return false, "Company name is too long. Please enter a shorter name."
	}
	if allDigits(name) {
		return false, "Company name should only contain alphanumeric characters."
	}
	return true, OK
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// CompanyLookup finds a company by exact name, returning domain.ErrNotFound
// when there is none.
type CompanyLookup func(ctx context.Context, name string) (domain.Company, error)

// CompanyNameAvailable reports whether no company already has exactly this
// name. Lookup failures other than not-found are returned as errors.
func CompanyNameAvailable(ctx context.Context, lookup CompanyLookup, name string) (bool, string, error) {
	_, err := lookup(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return true, OK, nil
	case err != nil:
		return false, "", fmt.Errorf("lookup company %q: %w", name, err)
	}
	return false, MsgNameTaken, nil
}

func Year(year int) (bool, string) {
	if year < MinYear || year > MaxYear {
		return false, fmt.Sprintf("Please enter a year between %d and %d.", MinYear, MaxYear)
	}
	return true, OK
}

func Month(raw string) (bool, string) {
	if _, ok := domain.ParseMonth(raw); !ok {
		return false, "Please select a valid month from the keyboard."
	}
	return true, OK
}

func NonNegative(value int64, field string) (bool, string) {
	if value < 0 {
		return false, fmt.Sprintf("The %s value must be zero or positive.", field)
	}
	return true, OK
}

// ParseInt parses integer-like input. Callers turn the error into a re-prompt.
func ParseInt(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
