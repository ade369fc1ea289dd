package repo

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

var (
	ErrNotFound         = domain.ErrNotFound
	ErrCompanyNameTaken = errors.New("company name already taken")
	ErrCompanyExists    = errors.New("user already owns a company")
)

const uniqueViolation = "23505"

// uniqueConstraint returns the violated constraint name, or "" when err is
// not a unique violation.
func uniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
