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

type ItemStore struct {
	pool *pgxpool.Pool
}

func NewItemStore(pool *pgxpool.Pool) *ItemStore {
	return &ItemStore{pool: pool}
}

const itemColumns = `id, inventory_id, name, description, created_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	var it models.Item
	if err := row.Scan(&it.ID, &it.InventoryID, &it.Name, &it.Description, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *ItemStore) Create(ctx context.Context, inventoryID uuid.UUID, name, description string) (*models.Item, error) {
	query := `
		INSERT INTO items (inventory_id, name, description, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING ` + itemColumns

	it, err := scanItem(s.pool.QueryRow(ctx, query, inventoryID, name, description))
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return it, nil
}

func (s *ItemStore) GetByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	it, err := scanItem(s.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (s *ItemStore) ListByInventory(ctx context.Context, inventoryID uuid.UUID) ([]models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE inventory_id = $1
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (s *ItemStore) Delete(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
