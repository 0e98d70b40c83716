package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can own inventories, receive grants, post in
// discussions and like items.
//
// PasswordHash never leaves the server: it is excluded from JSON.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Inventory is a user-owned collection of items.
//
// OwnerID is set once at creation. There is no transfer-of-ownership
// operation, so every permission rule can treat it as immutable.
type Inventory struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	IsPublic    bool      `json:"is_public"`
}

// Item belongs to exactly one inventory for its whole life.
type Item struct {
	ID          uuid.UUID `json:"id"`
	InventoryID uuid.UUID `json:"inventory_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// AccessGrant gives one non-owner user write access to one inventory.
// At most one grant exists per (InventoryID, UserID).
type AccessGrant struct {
	ID          uuid.UUID `json:"id"`
	InventoryID uuid.UUID `json:"inventory_id"`
	UserID      uuid.UUID `json:"user_id"`
	GrantedAt   time.Time `json:"granted_at"`
}

// DiscussionPost is an immutable chat message on an inventory.
//
// UserName is copied from the author's display name when the post is written
// and is not updated afterwards.
type DiscussionPost struct {
	ID          uuid.UUID `json:"id"`
	InventoryID uuid.UUID `json:"inventory_id"`
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostView is the wire projection of a DiscussionPost. It never carries
// the author or inventory ids.
type PostView struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// View projects a post onto its wire shape.
func (p *DiscussionPost) View() PostView {
	return PostView{
		ID:        p.ID,
		UserName:  p.UserName,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

// ItemLike records that a user likes an item. One row per (ItemID, UserID).
type ItemLike struct {
	ID     uuid.UUID `json:"id"`
	ItemID uuid.UUID `json:"item_id"`
	UserID uuid.UUID `json:"user_id"`
}

// Search result type tags.
const (
	SearchTypeInventory = "Inventory"
	SearchTypeItem      = "Item"
)

// SearchResult is one ranked hit from either inventories or items.
// InventoryID is only set for item hits, so the client can link to the
// parent inventory.
type SearchResult struct {
	Type        string     `json:"type"`
	ID          uuid.UUID  `json:"id"`
	InventoryID *uuid.UUID `json:"inventory_id"`
	Title       string     `json:"title"`
	Snippet     string     `json:"snippet"`
	Rank        float64    `json:"rank"`
}

// SearchPage is one page of merged search results plus pagination data.
type SearchPage struct {
	Query      string         `json:"query"`
	Results    []SearchResult `json:"results"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	TotalCount int            `json:"total_count"`
}

// InventoryStats summarizes activity on an inventory.
type InventoryStats struct {
	TotalItems    int   `json:"total_items"`
	TotalLikes    int   `json:"total_likes"`
	MostLikedItem *Item `json:"most_liked_item,omitempty"`
	LatestItem    *Item `json:"latest_item,omitempty"`
}

// InventoryDetails is everything the inventory page needs for one viewer.
type InventoryDetails struct {
	Inventory       *Inventory      `json:"inventory"`
	IsOwner         bool            `json:"is_owner"`
	CanEdit         bool            `json:"can_edit"`
	Items           []Item          `json:"items"`
	UsersWithAccess []User          `json:"users_with_access"`
	Posts           []PostView      `json:"posts"`
	Stats           *InventoryStats `json:"stats"`
}
