package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

type Users struct{ pool *pgxpool.Pool }

func NewUsers(p *pgxpool.Pool) *Users { return &Users{pool: p} }

// FindOrCreate returns the user with the telegram id, inserting it on first
// contact. The user's company, if any, is loaded too.
func (r *Users) FindOrCreate(ctx context.Context, telegramID int64, username string) (domain.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO users(id, username)
		VALUES($1,$2)
		ON CONFLICT (id) DO NOTHING
	`, telegramID, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	u, err := getUser(ctx, tx, telegramID)
	if err != nil {
		return domain.User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, fmt.Errorf("commit: %w", err)
	}
	return u, nil
}

func (r *Users) Get(ctx context.Context, telegramID int64) (domain.User, error) {
	return getUser(ctx, r.pool, telegramID)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getUser(ctx context.Context, q rowQuerier, telegramID int64) (domain.User, error) {
	var (
		u         domain.User
		companyID *int64
		name      *string
		ownerID   *int64
		companyTS *time.Time
	)
	err := q.QueryRow(ctx, `
		SELECT u.id, u.username, u.is_admin, u.created_at,
		       c.id, c.name, c.user_id, c.created_at
		FROM users u
		LEFT JOIN companies c ON c.user_id = u.id
		WHERE u.id = $1
	`, telegramID).Scan(&u.ID, &u.Username, &u.IsAdmin, &u.CreatedAt, &companyID, &name, &ownerID, &companyTS)
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if companyID != nil {
		u.Company = &domain.Company{ID: *companyID, Name: *name, UserID: *ownerID, CreatedAt: *companyTS}
	}
	return u, nil
}
