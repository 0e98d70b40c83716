package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/observ"
	"github.com/lalith-99/inventra/internal/permission"
	"github.com/lalith-99/inventra/internal/repository"
)

// AccessService decides and manages write access to inventories.
//
// Ownership is checked first and costs no I/O. Only non-owners pay for a
// grant lookup.
type AccessService struct {
	inventories repository.InventoryRepository
	users       repository.UserRepository
	grants      repository.AccessRepository
	metrics     *observ.Metrics
}

func NewAccessService(
	inventories repository.InventoryRepository,
	users repository.UserRepository,
	grants repository.AccessRepository,
	metrics *observ.Metrics,
) *AccessService {
	return &AccessService{
		inventories: inventories,
		users:       users,
		grants:      grants,
		metrics:     metrics,
	}
}

// CanEditInventory reports whether userID may change the inventory's own
// fields. uuid.Nil (a guest) is always denied.
//
// Why go through the service instead of the permission package? The pure
// rule needs to know whether a grant exists, and only the service can ask
// storage. Owners never reach that query.
func (s *AccessService) CanEditInventory(ctx context.Context, inv *models.Inventory, userID uuid.UUID) (bool, error) {
	granted, err := s.lookupGrant(ctx, inv, userID)
	if err != nil {
		return false, err
	}
	return permission.CanEditInventory(inv, userID, granted), nil
}

// CanEditItems reports whether userID may add or remove items in the
// inventory. Today it follows the same owner-or-grant rule as
// CanEditInventory.
func (s *AccessService) CanEditItems(ctx context.Context, inv *models.Inventory, userID uuid.UUID) (bool, error) {
	granted, err := s.lookupGrant(ctx, inv, userID)
	if err != nil {
		return false, err
	}
	return permission.CanEditItems(inv, userID, granted), nil
}

func (s *AccessService) lookupGrant(ctx context.Context, inv *models.Inventory, userID uuid.UUID) (bool, error) {
	if !permission.NeedsGrantLookup(inv, userID) {
		if permission.IsOwner(inv, userID) {
			s.record("owner")
		} else {
			s.record("denied")
		}
		return false, nil
	}

	granted, err := s.grants.Exists(ctx, inv.ID, userID)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}
	if granted {
		s.record("grant")
	} else {
		s.record("denied")
	}
	return granted, nil
}

func (s *AccessService) record(decision string) {
	if s.metrics != nil {
		s.metrics.AccessDecisions.WithLabelValues(decision).Inc()
	}
}

// Grant gives the user registered under email write access to the
// inventory. The owner already has access and is never stored as a grant.
func (s *AccessService) Grant(ctx context.Context, inventoryID uuid.UUID, email string) error {
	inv, err := s.inventories.GetByID(ctx, inventoryID)
	if err != nil {
		return fmt.Errorf("get inventory: %w", err)
	}
	if inv == nil {
		return ErrNotFound
	}

	email = strings.TrimSpace(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user by email: %w", err)
	}
	if user == nil {
		return invalid(ErrUserNotFound, fmt.Sprintf("no user found with email '%s'", email))
	}

	alreadyGranted := invalid(ErrAlreadyGranted, fmt.Sprintf("user '%s' already has access", email))
	if permission.IsOwner(inv, user.ID) {
		return alreadyGranted
	}

	exists, err := s.grants.Exists(ctx, inv.ID, user.ID)
	if err != nil {
		return fmt.Errorf("check access: %w", err)
	}
	if exists {
		return alreadyGranted
	}

	if _, err := s.grants.Grant(ctx, inv.ID, user.ID); err != nil {
		// Lost a race with a concurrent grant for the same user.
		if errors.Is(err, repository.ErrDuplicate) {
			return alreadyGranted
		}
		return fmt.Errorf("grant access: %w", err)
	}
	return nil
}

// Revoke removes a grant. Revoking a grant that does not exist is a no-op.
func (s *AccessService) Revoke(ctx context.Context, inventoryID, userID uuid.UUID) error {
	if err := s.grants.Revoke(ctx, inventoryID, userID); err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}
	return nil
}

// ListGrantees returns the users holding a grant on the inventory, oldest
// grant first. The owner is never in the list.
func (s *AccessService) ListGrantees(ctx context.Context, inventoryID uuid.UUID) ([]models.User, error) {
	users, err := s.grants.ListGrantees(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list grantees: %w", err)
	}
	return users, nil
}
