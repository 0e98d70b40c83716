package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/inventra/internal/models"
)

// SearchStore runs Postgres full-text search. Both sides of the match go
// through the 'english' configuration, so "shoes" matches "Shoe" and stop
// words are ignored. plainto_tsquery accepts raw user input without FTS
// operator syntax.
type SearchStore struct {
	pool *pgxpool.Pool
}

func NewSearchStore(pool *pgxpool.Pool) *SearchStore {
	return &SearchStore{pool: pool}
}

// snippetLength is the number of description characters returned per hit.
const snippetLength = 200

func (s *SearchStore) SearchInventories(ctx context.Context, query string) ([]models.SearchResult, error) {
	sql := `
		SELECT id, title, LEFT(description, $2),
		       ts_rank(
		           to_tsvector('english', coalesce(title, '') || ' ' || coalesce(description, '')),
		           plainto_tsquery('english', $1)
		       ) AS rank
		FROM inventories
		WHERE to_tsvector('english', coalesce(title, '') || ' ' || coalesce(description, ''))
		      @@ plainto_tsquery('english', $1)`

	rows, err := s.pool.Query(ctx, sql, query, snippetLength)
	if err != nil {
		return nil, fmt.Errorf("search inventories: %w", err)
	}
	defer rows.Close()

	results := make([]models.SearchResult, 0)
	for rows.Next() {
		r := models.SearchResult{Type: models.SearchTypeInventory}
		var rank float32
		if err := rows.Scan(&r.ID, &r.Title, &r.Snippet, &rank); err != nil {
			return nil, fmt.Errorf("scan inventory hit: %w", err)
		}
		r.Rank = float64(rank)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory hits: %w", err)
	}
	return results, nil
}

func (s *SearchStore) SearchItems(ctx context.Context, query string) ([]models.SearchResult, error) {
	sql := `
		SELECT id, inventory_id, name, LEFT(description, $2),
		       ts_rank(
		           to_tsvector('english', coalesce(name, '') || ' ' || coalesce(description, '')),
		           plainto_tsquery('english', $1)
		       ) AS rank
		FROM items
		WHERE to_tsvector('english', coalesce(name, '') || ' ' || coalesce(description, ''))
		      @@ plainto_tsquery('english', $1)`

	rows, err := s.pool.Query(ctx, sql, query, snippetLength)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	results := make([]models.SearchResult, 0)
	for rows.Next() {
		r := models.SearchResult{Type: models.SearchTypeItem}
		var rank float32
		var inventoryID uuid.UUID
		if err := rows.Scan(&r.ID, &inventoryID, &r.Title, &r.Snippet, &rank); err != nil {
			return nil, fmt.Errorf("scan item hit: %w", err)
		}
		r.InventoryID = &inventoryID
		r.Rank = float64(rank)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item hits: %w", err)
	}
	return results, nil
}
