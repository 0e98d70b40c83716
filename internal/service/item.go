package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/repository"
)

// ItemService adds and removes items. Both require CanEditItems on the
// item's inventory.
type ItemService struct {
	inventories repository.InventoryRepository
	items       repository.ItemRepository
	access      *AccessService
}

func NewItemService(
	inventories repository.InventoryRepository,
	items repository.ItemRepository,
	access *AccessService,
) *ItemService {
	return &ItemService{inventories: inventories, items: items, access: access}
}

// Create adds an item to the inventory. It returns ErrNotFound for a missing
// inventory and ErrForbidden when userID may not edit its items.
func (s *ItemService) Create(ctx context.Context, inventoryID, userID uuid.UUID, name, description string) (*models.Item, error) {
	inv, err := s.inventories.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	if inv == nil {
		return nil, ErrNotFound
	}

	ok, err := s.access.CanEditItems(ctx, inv, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid(ErrInvalidInput, "name is required")
	}

	item, err := s.items.Create(ctx, inventoryID, name, strings.TrimSpace(description))
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// Delete removes an item together with its likes.
func (s *ItemService) Delete(ctx context.Context, itemID, userID uuid.UUID) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return ErrNotFound
	}

	inv, err := s.inventories.GetByID(ctx, item.InventoryID)
	if err != nil {
		return fmt.Errorf("get inventory: %w", err)
	}
	if inv == nil {
		return ErrNotFound
	}

	ok, err := s.access.CanEditItems(ctx, inv, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
