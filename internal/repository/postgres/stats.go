package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/inventra/internal/models"
)

type StatsStore struct {
	pool *pgxpool.Pool
}

func NewStatsStore(pool *pgxpool.Pool) *StatsStore {
	return &StatsStore{pool: pool}
}

func (s *StatsStore) CountItems(ctx context.Context, inventoryID uuid.UUID) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM items WHERE inventory_id = $1`, inventoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (s *StatsStore) CountLikes(ctx context.Context, inventoryID uuid.UUID) (int, error) {
	query := `
		SELECT count(*)
		FROM item_likes l
		JOIN items i ON i.id = l.item_id
		WHERE i.inventory_id = $1`

	var n int
	if err := s.pool.QueryRow(ctx, query, inventoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory likes: %w", err)
	}
	return n, nil
}

// MostLikedItem breaks ties by the newest item.
func (s *StatsStore) MostLikedItem(ctx context.Context, inventoryID uuid.UUID) (*models.Item, error) {
	query := `
		SELECT i.id, i.inventory_id, i.name, i.description, i.created_at
		FROM items i
		LEFT JOIN item_likes l ON l.item_id = i.id
		WHERE i.inventory_id = $1
		GROUP BY i.id
		ORDER BY count(l.id) DESC, i.created_at DESC
		LIMIT 1`

	item, err := scanItem(s.pool.QueryRow(ctx, query, inventoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("most liked item: %w", err)
	}
	return item, nil
}

func (s *StatsStore) LatestItem(ctx context.Context, inventoryID uuid.UUID) (*models.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items
		WHERE inventory_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	item, err := scanItem(s.pool.QueryRow(ctx, query, inventoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest item: %w", err)
	}
	return item, nil
}
