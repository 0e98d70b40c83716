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

type InventoryStore struct {
	pool *pgxpool.Pool
}

func NewInventoryStore(pool *pgxpool.Pool) *InventoryStore {
	return &InventoryStore{pool: pool}
}

const inventoryColumns = `id, title, description, category, owner_id, created_at, is_public`

func scanInventory(row pgx.Row) (*models.Inventory, error) {
	var inv models.Inventory
	err := row.Scan(
		&inv.ID,
		&inv.Title,
		&inv.Description,
		&inv.Category,
		&inv.OwnerID,
		&inv.CreatedAt,
		&inv.IsPublic,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InventoryStore) Create(ctx context.Context, in *models.Inventory) (*models.Inventory, error) {
	query := `
		INSERT INTO inventories (title, description, category, owner_id, created_at, is_public)
		VALUES ($1, $2, $3, $4, now(), $5)
		RETURNING ` + inventoryColumns

	inv, err := scanInventory(s.pool.QueryRow(ctx, query,
		in.Title, in.Description, in.Category, in.OwnerID, in.IsPublic))
	if err != nil {
		return nil, fmt.Errorf("insert inventory: %w", err)
	}
	return inv, nil
}

func (s *InventoryStore) GetByID(ctx context.Context, inventoryID uuid.UUID) (*models.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = $1`

	inv, err := scanInventory(s.pool.QueryRow(ctx, query, inventoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

func (s *InventoryStore) List(ctx context.Context) ([]models.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()

	inventories := make([]models.Inventory, 0)
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		inventories = append(inventories, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventories: %w", err)
	}

	return inventories, nil
}

// Delete removes the inventory. Items, grants and posts go with it through
// ON DELETE CASCADE, and item likes follow their items, all inside the one
// statement.
func (s *InventoryStore) Delete(ctx context.Context, inventoryID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, inventoryID)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}
