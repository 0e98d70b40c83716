package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/repository"
)

// DiscussionService stores and lists the chat posts of an inventory.
//
// Why does it return PostView instead of DiscussionPost? Posts go straight
// to every websocket subscriber and to anonymous readers of the history, and
// the author and inventory ids must not travel with them.
type DiscussionService struct {
	inventories repository.InventoryRepository
	posts       repository.DiscussionRepository
	names       *Directory
	now         func() time.Time
}

func NewDiscussionService(
	inventories repository.InventoryRepository,
	posts repository.DiscussionRepository,
	names *Directory,
) *DiscussionService {
	return &DiscussionService{
		inventories: inventories,
		posts:       posts,
		names:       names,
		now:         time.Now,
	}
}

// PostMessage stores a chat message and returns its wire projection.
//
// Blank content (after trimming) is ignored: it returns nil, nil and
// nothing is stored. The author's current display name is copied into the
// post and never updated afterwards.
func (s *DiscussionService) PostMessage(ctx context.Context, inventoryID, userID uuid.UUID, content string) (*models.PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	inv, err := s.inventories.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	if inv == nil {
		return nil, ErrNotFound
	}

	post, err := s.posts.Create(ctx, &models.DiscussionPost{
		ID:          uuid.New(),
		InventoryID: inventoryID,
		UserID:      userID,
		UserName:    s.names.DisplayName(ctx, userID),
		Content:     content,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	view := post.View()
	return &view, nil
}

// History returns an inventory's posts oldest first.
func (s *DiscussionService) History(ctx context.Context, inventoryID uuid.UUID) ([]models.PostView, error) {
	inv, err := s.inventories.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	if inv == nil {
		return nil, ErrNotFound
	}

	posts, err := s.posts.ListByInventory(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, posts[i].View())
	}
	return views, nil
}
