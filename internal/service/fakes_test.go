package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/repository"
	"go.uber.org/zap"
)

var zapNop = zap.NewNop()

// memStore is an in-memory implementation of every repository port, with
// the same cascade and uniqueness rules as the Postgres schema.
type memStore struct {
	mu sync.Mutex

	users       map[uuid.UUID]*models.User
	inventories map[uuid.UUID]*models.Inventory
	items       map[uuid.UUID]*models.Item
	grants      []models.AccessGrant
	posts       []models.DiscussionPost
	likes       map[[2]uuid.UUID]bool

	// failUserLookup makes GetByID fail, for the name fallback path.
	failUserLookup bool
	// existsCalls counts grant lookups.
	existsCalls int
	// searchCalls counts search queries of either kind.
	searchCalls int
	// skipExists makes Exists report false so Grant hits the unique backstop.
	skipExists bool
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uuid.UUID]*models.User),
		inventories: make(map[uuid.UUID]*models.Inventory),
		items:       make(map[uuid.UUID]*models.Item),
		likes:       make(map[[2]uuid.UUID]bool),
	}
}

var (
	_ repository.UserRepository       = (*memUsers)(nil)
	_ repository.InventoryRepository  = (*memInventories)(nil)
	_ repository.ItemRepository       = (*memItems)(nil)
	_ repository.AccessRepository     = (*memAccess)(nil)
	_ repository.DiscussionRepository = (*memPosts)(nil)
	_ repository.LikeRepository       = (*memLikes)(nil)
	_ repository.SearchRepository     = (*memSearch)(nil)
	_ repository.StatsRepository      = (*memStats)(nil)
)

type (
	memUsers       struct{ *memStore }
	memInventories struct{ *memStore }
	memItems       struct{ *memStore }
	memAccess      struct{ *memStore }
	memPosts       struct{ *memStore }
	memLikes       struct{ *memStore }
	memSearch      struct{ *memStore }
	memStats       struct{ *memStore }
)

// --- users ---

func (m memUsers) Create(_ context.Context, email, displayName, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return nil, repository.ErrDuplicate
		}
	}
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m memUsers) GetByID(_ context.Context, userID uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUserLookup {
		return nil, errors.New("users table unavailable")
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// --- inventories ---

func (m memInventories) Create(_ context.Context, in *models.Inventory) (*models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv := *in
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now()
	m.inventories[inv.ID] = &inv
	cp := inv
	return &cp, nil
}

func (m memInventories) GetByID(_ context.Context, id uuid.UUID) (*models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.inventories[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m memInventories) List(_ context.Context) ([]models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Inventory, 0, len(m.inventories))
	for _, inv := range m.inventories {
		out = append(out, *inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memInventories) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inventories, id)

	for itemID, it := range m.items {
		if it.InventoryID == id {
			delete(m.items, itemID)
			for k := range m.likes {
				if k[0] == itemID {
					delete(m.likes, k)
				}
			}
		}
	}

	grants := m.grants[:0]
	for _, g := range m.grants {
		if g.InventoryID != id {
			grants = append(grants, g)
		}
	}
	m.grants = grants

	posts := m.posts[:0]
	for _, p := range m.posts {
		if p.InventoryID != id {
			posts = append(posts, p)
		}
	}
	m.posts = posts
	return nil
}

// --- items ---

func (m memItems) Create(_ context.Context, inventoryID uuid.UUID, name, description string) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := &models.Item{
		ID:          uuid.New(),
		InventoryID: inventoryID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	m.items[it.ID] = it
	cp := *it
	return &cp, nil
}

func (m memItems) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m memItems) ListByInventory(_ context.Context, inventoryID uuid.UUID) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemsOf(inventoryID), nil
}

func (m *memStore) itemsOf(inventoryID uuid.UUID) []models.Item {
	out := make([]models.Item, 0)
	for _, it := range m.items {
		if it.InventoryID == inventoryID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m memItems) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	for k := range m.likes {
		if k[0] == id {
			delete(m.likes, k)
		}
	}
	return nil
}

// --- access ---

func (m memAccess) Grant(_ context.Context, inventoryID, userID uuid.UUID) (*models.AccessGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.grants {
		if g.InventoryID == inventoryID && g.UserID == userID {
			return nil, repository.ErrDuplicate
		}
	}
	g := models.AccessGrant{ID: uuid.New(), InventoryID: inventoryID, UserID: userID, GrantedAt: time.Now()}
	m.grants = append(m.grants, g)
	return &g, nil
}

func (m memAccess) Revoke(_ context.Context, inventoryID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	grants := m.grants[:0]
	for _, g := range m.grants {
		if g.InventoryID != inventoryID || g.UserID != userID {
			grants = append(grants, g)
		}
	}
	m.grants = grants
	return nil
}

func (m memAccess) Exists(_ context.Context, inventoryID, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.existsCalls++
	if m.skipExists {
		return false, nil
	}
	for _, g := range m.grants {
		if g.InventoryID == inventoryID && g.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m memAccess) ListGrantees(_ context.Context, inventoryID uuid.UUID) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0)
	for _, g := range m.grants {
		if g.InventoryID == inventoryID {
			if u, ok := m.users[g.UserID]; ok {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (m *memStore) grantCount(inventoryID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, g := range m.grants {
		if g.InventoryID == inventoryID {
			n++
		}
	}
	return n
}

// --- discussion ---

func (m memPosts) Create(_ context.Context, post *models.DiscussionPost) (*models.DiscussionPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, *post)
	cp := *post
	return &cp, nil
}

func (m memPosts) ListByInventory(_ context.Context, inventoryID uuid.UUID) ([]models.DiscussionPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.DiscussionPost, 0)
	for _, p := range m.posts {
		if p.InventoryID == inventoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- likes ---

func (m memLikes) Toggle(_ context.Context, itemID, userID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := [2]uuid.UUID{itemID, userID}
	if m.likes[k] {
		delete(m.likes, k)
	} else {
		m.likes[k] = true
	}
	return m.likeCount(itemID), nil
}

func (m memLikes) Count(_ context.Context, itemID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likeCount(itemID), nil
}

func (m *memStore) likeCount(itemID uuid.UUID) int {
	n := 0
	for k := range m.likes {
		if k[0] == itemID {
			n++
		}
	}
	return n
}

// --- search ---

// matches is a crude stand-in for to_tsvector @@ plainto_tsquery: every
// query word, minus a trailing "s", must appear in the text.
func matches(text, query string) (bool, float64) {
	text = strings.ToLower(text)
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return false, 0
	}
	hits := 0
	for _, w := range words {
		w = strings.TrimSuffix(w, "s")
		if !strings.Contains(text, w) {
			return false, 0
		}
		hits += strings.Count(text, w)
	}
	return true, float64(hits) / float64(len(text)+1)
}

func snippet(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}

func (m memSearch) SearchInventories(_ context.Context, query string) ([]models.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	out := make([]models.SearchResult, 0)
	for _, inv := range m.inventories {
		if ok, rank := matches(inv.Title+" "+inv.Description, query); ok {
			out = append(out, models.SearchResult{
				Type:    models.SearchTypeInventory,
				ID:      inv.ID,
				Title:   inv.Title,
				Snippet: snippet(inv.Description),
				Rank:    rank,
			})
		}
	}
	return out, nil
}

func (m memSearch) SearchItems(_ context.Context, query string) ([]models.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	out := make([]models.SearchResult, 0)
	for _, it := range m.items {
		if ok, rank := matches(it.Name+" "+it.Description, query); ok {
			invID := it.InventoryID
			out = append(out, models.SearchResult{
				Type:        models.SearchTypeItem,
				ID:          it.ID,
				InventoryID: &invID,
				Title:       it.Name,
				Snippet:     snippet(it.Description),
				Rank:        rank,
			})
		}
	}
	return out, nil
}

// --- stats ---

func (m memStats) CountItems(_ context.Context, inventoryID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.itemsOf(inventoryID)), nil
}

func (m memStats) CountLikes(_ context.Context, inventoryID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, it := range m.itemsOf(inventoryID) {
		n += m.likeCount(it.ID)
	}
	return n, nil
}

func (m memStats) MostLikedItem(_ context.Context, inventoryID uuid.UUID) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *models.Item
	bestCount := -1
	for _, it := range m.itemsOf(inventoryID) {
		if c := m.likeCount(it.ID); c > bestCount {
			it := it
			best, bestCount = &it, c
		}
	}
	return best, nil
}

func (m memStats) LatestItem(_ context.Context, inventoryID uuid.UUID) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.itemsOf(inventoryID)
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// fixture wires every service over one memStore.
type fixture struct {
	store      *memStore
	access     *AccessService
	discussion *DiscussionService
	likes      *LikeService
	search     *SearchService
	stats      *StatsService
	inventory  *InventoryService
	items      *ItemService
}

func newFixture() *fixture {
	st := newMemStore()
	users := memUsers{st}
	invs := memInventories{st}
	items := memItems{st}

	access := NewAccessService(invs, users, memAccess{st}, nil)
	discussion := NewDiscussionService(invs, memPosts{st}, NewDirectory(users, nil, zapNop))
	stats := NewStatsService(memStats{st})

	return &fixture{
		store:      st,
		access:     access,
		discussion: discussion,
		likes:      NewLikeService(items, memLikes{st}, nil),
		search:     NewSearchService(memSearch{st}, nil),
		stats:      stats,
		inventory:  NewInventoryService(invs, items, access, discussion, stats),
		items:      NewItemService(invs, items, access),
	}
}

func (f *fixture) user(email, name string) *models.User {
	u, err := memUsers{f.store}.Create(context.Background(), email, name, "hash")
	if err != nil {
		panic(err)
	}
	return u
}

func (f *fixture) inventoryOf(owner uuid.UUID, title, description string) *models.Inventory {
	inv, err := f.inventory.Create(context.Background(), owner, CreateInventoryInput{Title: title, Description: description})
	if err != nil {
		panic(err)
	}
	return inv
}
