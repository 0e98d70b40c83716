// Package permission answers "may this user change this inventory" from
// ownership and grant facts alone. It performs no I/O, so every rule here
// can be tested without storage.
package permission

import (
	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
)

// IsOwner reports whether userID owns inv. A nil inventory or the zero user
// id never owns anything.
func IsOwner(inv *models.Inventory, userID uuid.UUID) bool {
	if inv == nil || userID == uuid.Nil {
		return false
	}
	return inv.OwnerID == userID
}

// NeedsGrantLookup reports whether the grant table has to be consulted to
// decide edit permission. Owners are decided without touching storage.
func NeedsGrantLookup(inv *models.Inventory, userID uuid.UUID) bool {
	return inv != nil && userID != uuid.Nil && !IsOwner(inv, userID)
}

// CanEditInventory is true iff userID owns inv or holds an explicit grant
// on it. granted is the result of the grant lookup and is ignored for the
// owner.
func CanEditInventory(inv *models.Inventory, userID uuid.UUID, granted bool) bool {
	if inv == nil || userID == uuid.Nil {
		return false
	}
	if IsOwner(inv, userID) {
		return true
	}
	return granted
}

// CanEditItems decides create/delete rights on an inventory's items.
// It currently shares the inventory rule.
func CanEditItems(inv *models.Inventory, userID uuid.UUID, granted bool) bool {
	return CanEditInventory(inv, userID, granted)
}
