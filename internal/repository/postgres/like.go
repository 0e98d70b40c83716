package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeStore struct {
	pool *pgxpool.Pool
}

func NewLikeStore(pool *pgxpool.Pool) *LikeStore {
	return &LikeStore{pool: pool}
}

// Toggle flips the (item, user) like and returns the new count.
//
// Read, branch and write run in one transaction. Two toggles from the same
// user racing each other may both see "absent"; the unique index turns the
// second insert into a no-op via ON CONFLICT, so the count can never exceed
// one like per user.
func (s *LikeStore) Toggle(ctx context.Context, itemID, userID uuid.UUID) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin toggle like: %w", err)
	}
	defer tx.Rollback(ctx)

	var likeID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM item_likes WHERE item_id = $1 AND user_id = $2`,
		itemID, userID,
	).Scan(&likeID)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO item_likes (item_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (item_id, user_id) DO NOTHING`,
			itemID, userID)
		if err != nil {
			return 0, fmt.Errorf("insert like: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("find like: %w", err)
	default:
		if _, err := tx.Exec(ctx, `DELETE FROM item_likes WHERE id = $1`, likeID); err != nil {
			return 0, fmt.Errorf("delete like: %w", err)
		}
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM item_likes WHERE item_id = $1`, itemID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit toggle like: %w", err)
	}
	return count, nil
}

func (s *LikeStore) Count(ctx context.Context, itemID uuid.UUID) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM item_likes WHERE item_id = $1`, itemID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
