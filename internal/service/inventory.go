package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/permission"
	"github.com/lalith-99/inventra/internal/repository"
)

// CreateInventoryInput carries the user-editable fields of a new inventory.
type CreateInventoryInput struct {
	Title       string
	Description string
	Category    string
	IsPublic    bool
}

// InventoryService creates, reads and deletes inventories and assembles
// the per-viewer details page.
type InventoryService struct {
	inventories repository.InventoryRepository
	items       repository.ItemRepository
	access      *AccessService
	discussion  *DiscussionService
	stats       *StatsService
}

func NewInventoryService(
	inventories repository.InventoryRepository,
	items repository.ItemRepository,
	access *AccessService,
	discussion *DiscussionService,
	stats *StatsService,
) *InventoryService {
	return &InventoryService{
		inventories: inventories,
		items:       items,
		access:      access,
		discussion:  discussion,
		stats:       stats,
	}
}

// Create stores a new inventory owned by ownerID. The title is required.
func (s *InventoryService) Create(ctx context.Context, ownerID uuid.UUID, in CreateInventoryInput) (*models.Inventory, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid(ErrInvalidInput, "title is required")
	}

	inv, err := s.inventories.Create(ctx, &models.Inventory{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		OwnerID:     ownerID,
		IsPublic:    in.IsPublic,
	})
	if err != nil {
		return nil, fmt.Errorf("create inventory: %w", err)
	}
	return inv, nil
}

// Get returns ErrNotFound for a missing inventory.
func (s *InventoryService) Get(ctx context.Context, inventoryID uuid.UUID) (*models.Inventory, error) {
	inv, err := s.inventories.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	return inv, nil
}

// List returns every inventory, newest first.
func (s *InventoryService) List(ctx context.Context) ([]models.Inventory, error) {
	invs, err := s.inventories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	return invs, nil
}

// Details assembles the inventory page for viewerID, which is uuid.Nil for
// guests. The grantee list is only filled in for the owner.
func (s *InventoryService) Details(ctx context.Context, inventoryID, viewerID uuid.UUID) (*models.InventoryDetails, error) {
	inv, err := s.Get(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	canEdit, err := s.access.CanEditInventory(ctx, inv, viewerID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByInventory(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	posts, err := s.discussion.History(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.ForInventory(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	details := &models.InventoryDetails{
		Inventory:       inv,
		IsOwner:         permission.IsOwner(inv, viewerID),
		CanEdit:         canEdit,
		Items:           items,
		UsersWithAccess: []models.User{},
		Posts:           posts,
		Stats:           stats,
	}
	if details.IsOwner {
		grantees, err := s.access.ListGrantees(ctx, inventoryID)
		if err != nil {
			return nil, err
		}
		details.UsersWithAccess = grantees
	}
	return details, nil
}

// Delete removes the inventory and, through the schema's cascades, its
// items, grants, posts and likes. Only the owner may delete; a grant is
// not enough.
func (s *InventoryService) Delete(ctx context.Context, inventoryID, userID uuid.UUID) error {
	inv, err := s.Get(ctx, inventoryID)
	if err != nil {
		return err
	}
	if !permission.IsOwner(inv, userID) {
		return ErrForbidden
	}
	if err := s.inventories.Delete(ctx, inventoryID); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}
