package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

type Companies struct{ pool *pgxpool.Pool }

func NewCompanies(p *pgxpool.Pool) *Companies { return &Companies{pool: p} }

// Create inserts a company for the owner. The unique constraints are the
// source of truth: a taken name maps to ErrCompanyNameTaken and a second
// company for the same owner to ErrCompanyExists.
func (r *Companies) Create(ctx context.Context, ownerID int64, name string) (domain.Company, error) {
	c := domain.Company{Name: name, UserID: ownerID}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO companies(name, user_id)
		VALUES($1,$2)
		RETURNING id, created_at
	`, name, ownerID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch uniqueConstraint(err) {
		case "companies_name_key":
			return domain.Company{}, ErrCompanyNameTaken
		case "companies_user_id_key":
			return domain.Company{}, ErrCompanyExists
		}
		return domain.Company{}, fmt.Errorf("insert company: %w", err)
	}
	return c, nil
}

// Delete removes the company; its monthly data goes with it (ON DELETE CASCADE).
func (r *Companies) Delete(ctx context.Context, c domain.Company) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, c.ID)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Companies) ByName(ctx context.Context, name string) (domain.Company, error) {
	var c domain.Company
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, user_id, created_at
		FROM companies
		WHERE name = $1
	`, name).Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.Company{}, ErrNotFound
		}
		return domain.Company{}, fmt.Errorf("get company by name: %w", err)
	}
	return c, nil
}

// NamesWithData lists companies that have at least one monthly record.
func (r *Companies) NamesWithData(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT c.name
		FROM companies c
		JOIN monthly_companies_data m ON m.company_id = c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
