package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/service"
)

// The handlers depend on these narrow views of the service layer so they
// can be tested with stubs. The *service.XxxService types satisfy them.

type InventoryService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in service.CreateInventoryInput) (*models.Inventory, error)
	Get(ctx context.Context, inventoryID uuid.UUID) (*models.Inventory, error)
	List(ctx context.Context) ([]models.Inventory, error)
	Details(ctx context.Context, inventoryID, viewerID uuid.UUID) (*models.InventoryDetails, error)
	Delete(ctx context.Context, inventoryID, userID uuid.UUID) error
}

type AccessService interface {
	Grant(ctx context.Context, inventoryID uuid.UUID, email string) error
	Revoke(ctx context.Context, inventoryID, userID uuid.UUID) error
	ListGrantees(ctx context.Context, inventoryID uuid.UUID) ([]models.User, error)
}

type ItemService interface {
	Create(ctx context.Context, inventoryID, userID uuid.UUID, name, description string) (*models.Item, error)
	Delete(ctx context.Context, itemID, userID uuid.UUID) error
}

type LikeService interface {
	Toggle(ctx context.Context, itemID, userID uuid.UUID) (int, error)
}

type SearchService interface {
	Search(ctx context.Context, query string, page, pageSize int) (*models.SearchPage, error)
}

type DiscussionService interface {
	History(ctx context.Context, inventoryID uuid.UUID) ([]models.PostView, error)
}

var (
	_ InventoryService  = (*service.InventoryService)(nil)
	_ AccessService     = (*service.AccessService)(nil)
	_ ItemService       = (*service.ItemService)(nil)
	_ LikeService       = (*service.LikeService)(nil)
	_ SearchService     = (*service.SearchService)(nil)
	_ DiscussionService = (*service.DiscussionService)(nil)
)
