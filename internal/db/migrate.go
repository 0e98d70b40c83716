package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending goose migrations. goose speaks database/sql,
// so the pool is bridged through pgx's stdlib adapter for the duration of
// the run.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(EmbedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Migrate runs the embedded migrations against this pool.
func (db *DB) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, db.pool); err != nil {
		return err
	}
	db.logger.Info("database migrations applied")
	return nil
}
