package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/observ"
	"github.com/lalith-99/inventra/internal/repository"
)

// LikeService toggles item likes. The toggle itself runs in one storage
// transaction; the service only checks that the item exists.
type LikeService struct {
	items   repository.ItemRepository
	likes   repository.LikeRepository
	metrics *observ.Metrics
}

func NewLikeService(items repository.ItemRepository, likes repository.LikeRepository, metrics *observ.Metrics) *LikeService {
	return &LikeService{items: items, likes: likes, metrics: metrics}
}

// Toggle likes the item for userID, or unlikes it if already liked, and
// returns the item's like count afterwards. Any authenticated user may
// like any item.
func (s *LikeService) Toggle(ctx context.Context, itemID, userID uuid.UUID) (int, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return 0, ErrNotFound
	}

	count, err := s.likes.Toggle(ctx, itemID, userID)
	if err != nil {
		return 0, fmt.Errorf("toggle like: %w", err)
	}
	if s.metrics != nil {
		s.metrics.LikeToggles.Inc()
	}
	return count, nil
}
