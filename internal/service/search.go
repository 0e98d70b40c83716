package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/observ"
	"github.com/lalith-99/inventra/internal/repository"
	"golang.org/x/sync/errgroup"
)

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 10

// SearchService runs one query against inventories and items, merges the
// hits by rank and pages through them. Search results are not filtered by
// viewer: anyone can find any inventory or item.
type SearchService struct {
	repo    repository.SearchRepository
	metrics *observ.Metrics
}

func NewSearchService(repo repository.SearchRepository, metrics *observ.Metrics) *SearchService {
	return &SearchService{repo: repo, metrics: metrics}
}

// Search returns one page of hits for query. A blank query returns an empty
// first page without touching storage. page is clamped into range and a
// non-positive pageSize becomes DefaultPageSize.
func (s *SearchService) Search(ctx context.Context, query string, page, pageSize int) (*models.SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.record("empty")
		return &models.SearchPage{
			Query:      query,
			Results:    []models.SearchResult{},
			Page:       1,
			TotalPages: 1,
		}, nil
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var inventories, items []models.SearchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inventories, err = s.repo.SearchInventories(gctx, query)
		if err != nil {
			return fmt.Errorf("search inventories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.SearchItems(gctx, query)
		if err != nil {
			return fmt.Errorf("search items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.record("error")
		return nil, err
	}

	all := make([]models.SearchResult, 0, len(inventories)+len(items))
	all = append(all, inventories...)
	all = append(all, items...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Rank > all[j].Rank
	})

	total := len(all)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)

	if total == 0 {
		s.record("miss")
	} else {
		s.record("hit")
	}

	return &models.SearchPage{
		Query:      query,
		Results:    all[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

func (s *SearchService) record(result string) {
	if s.metrics != nil {
		s.metrics.SearchQueries.WithLabelValues(result).Inc()
	}
}
