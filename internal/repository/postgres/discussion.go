package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/inventra/internal/models"
)

type DiscussionStore struct {
	pool *pgxpool.Pool
}

func NewDiscussionStore(pool *pgxpool.Pool) *DiscussionStore {
	return &DiscussionStore{pool: pool}
}

// Create stores the post exactly as given: id and created_at are assigned by
// the service, not by the client and not by Postgres defaults.
func (s *DiscussionStore) Create(ctx context.Context, post *models.DiscussionPost) (*models.DiscussionPost, error) {
	query := `
		INSERT INTO discussion_posts (id, inventory_id, user_id, user_name, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, inventory_id, user_id, user_name, content, created_at`

	var p models.DiscussionPost
	err := s.pool.QueryRow(ctx, query,
		post.ID, post.InventoryID, post.UserID, post.UserName, post.Content, post.CreatedAt,
	).Scan(
		&p.ID,
		&p.InventoryID,
		&p.UserID,
		&p.UserName,
		&p.Content,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (s *DiscussionStore) ListByInventory(ctx context.Context, inventoryID uuid.UUID) ([]models.DiscussionPost, error) {
	query := `
		SELECT id, inventory_id, user_id, user_name, content, created_at
		FROM discussion_posts
		WHERE inventory_id = $1
		ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.DiscussionPost, 0)
	for rows.Next() {
		var p models.DiscussionPost
		if err := rows.Scan(
			&p.ID,
			&p.InventoryID,
			&p.UserID,
			&p.UserName,
			&p.Content,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}
