package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/lalith-99/inventra/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_RedShoes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user("owner@example.com", "Owner")
	inv := f.inventoryOf(owner.ID, "Red Running Shoes", "")
	_, err := f.items.Create(ctx, inv.ID, owner.ID, "Blue Hat", "")
	require.NoError(t, err)

	page, err := f.search.Search(ctx, "red shoes", 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Results, 1)
	assert.Equal(t, models.SearchTypeInventory, page.Results[0].Type)
	assert.Equal(t, inv.ID, page.Results[0].ID)
	assert.Nil(t, page.Results[0].InventoryID)
}

func TestSearch_EmptyQuerySkipsStorage(t *testing.T) {
	f := newFixture()

	page, err := f.search.Search(context.Background(), "   ", 4, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Zero(t, page.TotalCount)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Zero(t, f.store.searchCalls)
}

func seedWidgets(t *testing.T, f *fixture, n int) {
	t.Helper()
	owner := f.user("owner@example.com", "Owner")
	inv := f.inventoryOf(owner.ID, "Storage", "")
	for i := 0; i < n; i++ {
		_, err := f.items.Create(context.Background(), inv.ID, owner.ID, fmt.Sprintf("widget %d", i), "")
		require.NoError(t, err)
	}
}

func TestSearch_PageClamping(t *testing.T) {
	f := newFixture()
	seedWidgets(t, f, 25)

	cases := []struct {
		name      string
		page      int
		wantPage  int
		wantCount int
	}{
		{"first", 1, 1, 10},
		{"last", 3, 3, 5},
		{"past the end", 10, 3, 5},
		{"zero", 0, 1, 10},
		{"negative", -2, 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := f.search.Search(context.Background(), "widget", tc.page, 10)
			require.NoError(t, err)
			assert.Equal(t, 25, page.TotalCount)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, tc.wantPage, page.Page)
			assert.Len(t, page.Results, tc.wantCount)
		})
	}
}

func TestSearch_DefaultPageSize(t *testing.T) {
	f := newFixture()
	seedWidgets(t, f, 12)

	page, err := f.search.Search(context.Background(), "widget", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Results, DefaultPageSize)
}

func TestSearch_NoMatches(t *testing.T) {
	f := newFixture()
	seedWidgets(t, f, 3)

	page, err := f.search.Search(context.Background(), "gizmo", 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Zero(t, page.TotalCount)
	assert.Empty(t, page.Results)
}

func TestSearch_SortedByRank(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.user("owner@example.com", "Owner")
	f.inventoryOf(owner.ID, "Lamp collection with many other words in the title", "")
	best := f.inventoryOf(owner.ID, "Lamp", "lamp lamp")

	page, err := f.search.Search(ctx, "lamp", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, best.ID, page.Results[0].ID)
	assert.GreaterOrEqual(t, page.Results[0].Rank, page.Results[1].Rank)
}
