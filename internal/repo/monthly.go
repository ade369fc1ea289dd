package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

type Monthly struct{ pool *pgxpool.Pool }

func NewMonthly(p *pgxpool.Pool) *Monthly { return &Monthly{pool: p} }

// Upsert stores the record, overwriting the four figures when the company
// already has a row for that year and month.
func (r *Monthly) Upsert(ctx context.Context, d domain.MonthlyData) (domain.MonthlyData, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO monthly_companies_data(company_id, year, month, income, expenses, profit, kpn)
		VALUES($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT ON CONSTRAINT uix_company_month_year_data DO UPDATE
		SET income=EXCLUDED.income,
			expenses=EXCLUDED.expenses,
			profit=EXCLUDED.profit,
			kpn=EXCLUDED.kpn
		RETURNING id, created_at
	`, d.CompanyID, d.Year, string(d.Month), d.Income, d.Expenses, d.Profit, d.KPN).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return domain.MonthlyData{}, fmt.Errorf("upsert monthly data: %w", err)
	}
	return d, nil
}

// Years returns the distinct years with data for the company, ascending.
func (r *Monthly) Years(ctx context.Context, companyID int64) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT year
		FROM monthly_companies_data
		WHERE company_id = $1
		ORDER BY year
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

// Series returns one point per stored month of the year, in calendar order.
func (r *Monthly) Series(ctx context.Context, companyID int64, field domain.Field, year int) ([]domain.Point, error) {
	col, err := field.Column()
	if err != nil {
		return nil, err
	}

	// col comes from the closed Field set, never from user input
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s, month
		FROM monthly_companies_data
		WHERE company_id = $1 AND year = $2
		ORDER BY array_position($3::text[], month)
	`, col), companyID, year, domain.MonthNames())
	if err != nil {
		return nil, fmt.Errorf("series %s: %w", col, err)
	}
	defer rows.Close()

	var out []domain.Point
	for rows.Next() {
		var (
			p     domain.Point
			month string
		)
		if err := rows.Scan(&p.Value, &month); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		p.Month = domain.Month(month)
		out = append(out, p)
	}
	return out, rows.Err()
}
