package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
)

// Every method takes ctx first: a cancelled request cancels its query.
//
// Lookups by id return nil, nil when the row does not exist. Callers turn
// that into a not-found error at the service layer.

// ErrDuplicate is returned when an insert hits a uniqueness constraint.
// It is the storage backstop behind the service's own duplicate checks.
var ErrDuplicate = errors.New("duplicate row")

// UserRepository handles user accounts.
type UserRepository interface {
	Create(ctx context.Context, email, displayName, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// InventoryRepository handles inventories. Delete cascades to items,
// grants, posts and likes of the inventory's items.
type InventoryRepository interface {
	Create(ctx context.Context, inv *models.Inventory) (*models.Inventory, error)
	GetByID(ctx context.Context, inventoryID uuid.UUID) (*models.Inventory, error)

	// List returns all inventories, newest first. Empty slice, never nil.
	List(ctx context.Context) ([]models.Inventory, error)

	Delete(ctx context.Context, inventoryID uuid.UUID) error
}

// ItemRepository handles items of an inventory.
type ItemRepository interface {
	Create(ctx context.Context, inventoryID uuid.UUID, name, description string) (*models.Item, error)
	GetByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)

	// ListByInventory returns items newest first.
	ListByInventory(ctx context.Context, inventoryID uuid.UUID) ([]models.Item, error)

	Delete(ctx context.Context, itemID uuid.UUID) error
}

// AccessRepository persists explicit write-access grants.
type AccessRepository interface {
	// Grant inserts a grant row. Returns ErrDuplicate if one already exists
	// for (inventoryID, userID).
	Grant(ctx context.Context, inventoryID, userID uuid.UUID) (*models.AccessGrant, error)

	// Revoke deletes the grant. No-op if there is none.
	Revoke(ctx context.Context, inventoryID, userID uuid.UUID) error

	// Exists is the hot-path check behind every edit permission decision
	// for non-owners.
	Exists(ctx context.Context, inventoryID, userID uuid.UUID) (bool, error)

	// ListGrantees returns the users holding grants, oldest grant first.
	ListGrantees(ctx context.Context, inventoryID uuid.UUID) ([]models.User, error)
}

// DiscussionRepository persists discussion posts.
type DiscussionRepository interface {
	Create(ctx context.Context, post *models.DiscussionPost) (*models.DiscussionPost, error)

	// ListByInventory returns posts oldest first (chat order).
	ListByInventory(ctx context.Context, inventoryID uuid.UUID) ([]models.DiscussionPost, error)
}

// LikeRepository handles item likes.
type LikeRepository interface {
	// Toggle removes the (itemID, userID) like if present, creates it
	// otherwise, and returns the item's like count afterwards.
	Toggle(ctx context.Context, itemID, userID uuid.UUID) (int, error)

	Count(ctx context.Context, itemID uuid.UUID) (int, error)
}

// SearchRepository is the full-text query port. Each method returns every
// match of one resource kind with its relevance rank; merging and paging
// happen in the service.
type SearchRepository interface {
	SearchInventories(ctx context.Context, query string) ([]models.SearchResult, error)
	SearchItems(ctx context.Context, query string) ([]models.SearchResult, error)
}

// StatsRepository computes per-inventory aggregates.
type StatsRepository interface {
	CountItems(ctx context.Context, inventoryID uuid.UUID) (int, error)
	CountLikes(ctx context.Context, inventoryID uuid.UUID) (int, error)

	// MostLikedItem returns nil, nil for an inventory without items.
	MostLikedItem(ctx context.Context, inventoryID uuid.UUID) (*models.Item, error)
	LatestItem(ctx context.Context, inventoryID uuid.UUID) (*models.Item, error)
}
