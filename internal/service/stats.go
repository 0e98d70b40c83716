package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/repository"
	"golang.org/x/sync/errgroup"
)

// StatsService computes the activity summary shown on an inventory page.
type StatsService struct {
	stats repository.StatsRepository
}

func NewStatsService(stats repository.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// ForInventory runs the four aggregate queries concurrently.
func (s *StatsService) ForInventory(ctx context.Context, inventoryID uuid.UUID) (*models.InventoryStats, error) {
	var st models.InventoryStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.stats.CountItems(gctx, inventoryID)
		if err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		st.TotalItems = n
		return nil
	})
	g.Go(func() error {
		n, err := s.stats.CountLikes(gctx, inventoryID)
		if err != nil {
			return fmt.Errorf("count likes: %w", err)
		}
		st.TotalLikes = n
		return nil
	})
	g.Go(func() error {
		item, err := s.stats.MostLikedItem(gctx, inventoryID)
		if err != nil {
			return fmt.Errorf("most liked item: %w", err)
		}
		st.MostLikedItem = item
		return nil
	})
	g.Go(func() error {
		item, err := s.stats.LatestItem(gctx, inventoryID)
		if err != nil {
			return fmt.Errorf("latest item: %w", err)
		}
		st.LatestItem = item
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}
