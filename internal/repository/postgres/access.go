package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/repository"
)

type AccessStore struct {
	pool *pgxpool.Pool
}

func NewAccessStore(pool *pgxpool.Pool) *AccessStore {
	return &AccessStore{pool: pool}
}

func (s *AccessStore) Grant(ctx context.Context, inventoryID, userID uuid.UUID) (*models.AccessGrant, error) {
	// No ON CONFLICT here: a duplicate grant is an error the caller must see.
	// The unique index on (inventory_id, user_id) catches the race between
	// the service's Exists check and this insert.
	query := `
		INSERT INTO inventory_access (inventory_id, user_id, granted_at)
		VALUES ($1, $2, now())
		RETURNING id, inventory_id, user_id, granted_at`

	var g models.AccessGrant
	err := s.pool.QueryRow(ctx, query, inventoryID, userID).Scan(
		&g.ID,
		&g.InventoryID,
		&g.UserID,
		&g.GrantedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("insert grant: %w", err)
	}
	return &g, nil
}

func (s *AccessStore) Revoke(ctx context.Context, inventoryID, userID uuid.UUID) error {
	// Deleting zero rows is not an error, so revoke is idempotent.
	query := `
		DELETE FROM inventory_access
		WHERE inventory_id = $1 AND user_id = $2`

	if _, err := s.pool.Exec(ctx, query, inventoryID, userID); err != nil {
		return fmt.Errorf("revoke grant: %w", err)
	}
	return nil
}

func (s *AccessStore) Exists(ctx context.Context, inventoryID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM inventory_access
			WHERE inventory_id = $1 AND user_id = $2
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, inventoryID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check grant: %w", err)
	}
	return exists, nil
}

func (s *AccessStore) ListGrantees(ctx context.Context, inventoryID uuid.UUID) ([]models.User, error) {
	query := `
		SELECT u.id, u.email, u.display_name, u.created_at
		FROM inventory_access a
		JOIN users u ON u.id = a.user_id
		WHERE a.inventory_id = $1
		ORDER BY a.granted_at, u.email`

	rows, err := s.pool.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list grantees: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan grantee: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grantees: %w", err)
	}

	return users, nil
}
