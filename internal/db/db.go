package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// ApplyMigrations runs every *.sql file of fsys not yet recorded in
// schema_migrations, in file name order, each in its own transaction.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var files []string
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".sql") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)

	log := zerolog.Ctx(ctx)
	for _, f := range files {
		name := path.Base(f)

		var exists bool
		if e := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename=$1)`, name).Scan(&exists); e != nil {
			return e
		}
		if exists {
			continue
		}

		sqlBytes, e := fs.ReadFile(fsys, f)
		if e != nil {
			return e
		}
		sqlText := strings.TrimSpace(string(sqlBytes))
		if sqlText == "" {
			return errors.New("empty migration: " + name)
		}

		tx, e := pool.Begin(ctx)
		if e != nil {
			return e
		}
		if _, e = tx.Exec(ctx, sqlText); e != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migration %s failed: %w", name, e)
		}
		if _, e = tx.Exec(ctx, `INSERT INTO schema_migrations(filename) VALUES($1)`, name); e != nil {
			_ = tx.Rollback(ctx)
			return e
		}
		if e := tx.Commit(ctx); e != nil {
			return e
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}
