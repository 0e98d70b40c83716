package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/models"
	"github.com/lalith-99/inventra/internal/observ"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Poster persists a chat message. It returns nil, nil for content that
// should be ignored.
type Poster interface {
	PostMessage(ctx context.Context, inventoryID, userID uuid.UUID, content string) (*models.PostView, error)
}

// Hub fans discussion posts out to every connection subscribed to an
// inventory's group.
//
// Each connection is in at most one group. Posts to one group are
// persisted and enqueued under that group's sequencing lock, so every
// subscriber sees them in the order they were stored. Different groups
// never wait on each other.
type Hub struct {
	poster  Poster
	logger  *zap.Logger
	metrics *observ.Metrics

	sendRate  rate.Limit
	sendBurst int

	mu       sync.RWMutex
	clients  map[*Client]struct{}
	groups   map[uuid.UUID]map[*Client]struct{}
	shutdown bool

	seqMu sync.Mutex
	seq   map[uuid.UUID]*sync.Mutex
}

type HubConfig struct {
	// Per-connection allowance for send frames.
	SendRatePerSec float64
	SendBurst      int
}

func NewHub(poster Poster, cfg HubConfig, logger *zap.Logger, metrics *observ.Metrics) *Hub {
	return &Hub{
		poster:    poster,
		logger:    logger,
		metrics:   metrics,
		sendRate:  rate.Limit(cfg.SendRatePerSec),
		sendBurst: cfg.SendBurst,
		clients:   make(map[*Client]struct{}),
		groups:    make(map[uuid.UUID]map[*Client]struct{}),
		seq:       make(map[uuid.UUID]*sync.Mutex),
	}
}

// register adds c to the hub. After Shutdown it closes c instead and
// reports false.
func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	if h.shutdown {
		h.mu.Unlock()
		c.close()
		return false
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.RealtimeConnections.Inc()
	}
	return true
}

// unregister removes the client from the hub and its group. Safe to call
// more than once.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.removeFromGroupLocked(c)
	h.mu.Unlock()

	c.close()
	if ok && h.metrics != nil {
		h.metrics.RealtimeConnections.Dec()
	}
}

// join subscribes c to group, leaving any group it was in before.
func (h *Hub) join(c *Client, group uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromGroupLocked(c)
	members, ok := h.groups[group]
	if !ok {
		members = make(map[*Client]struct{})
		h.groups[group] = members
	}
	members[c] = struct{}{}
	c.group = group
}

func (h *Hub) removeFromGroupLocked(c *Client) {
	if c.group == uuid.Nil {
		return
	}
	if members, ok := h.groups[c.group]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.groups, c.group)
		}
	}
	c.group = uuid.Nil
}

// groupLock returns the sequencing lock for group. Locks are kept for the
// life of the hub so two publishers can never hold different locks for the
// same group.
func (h *Hub) groupLock(group uuid.UUID) *sync.Mutex {
	h.seqMu.Lock()
	defer h.seqMu.Unlock()

	l, ok := h.seq[group]
	if !ok {
		l = &sync.Mutex{}
		h.seq[group] = l
	}
	return l
}

// Publish stores content as a post by userID and delivers it to every
// member of the inventory's group, the author included if subscribed.
// Blank content is a no-op.
func (h *Hub) Publish(ctx context.Context, inventoryID, userID uuid.UUID, content string) error {
	lock := h.groupLock(inventoryID)
	lock.Lock()
	defer lock.Unlock()

	post, err := h.poster.PostMessage(ctx, inventoryID, userID, content)
	if err != nil {
		return err
	}
	if post == nil {
		return nil
	}

	h.broadcast(inventoryID, encode(OutboundFrame{
		Type: FrameMessageReceived,
		Post: post,
	}))
	return nil
}

func (h *Hub) broadcast(group uuid.UUID, msg []byte) {
	var slow []*Client
	delivered := 0

	h.mu.RLock()
	for c := range h.groups[group] {
		if c.enqueue(msg) {
			delivered++
		} else {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	if h.metrics != nil {
		outcome := "delivered"
		if delivered == 0 {
			outcome = "no_subscribers"
		}
		h.metrics.RealtimeBroadcasts.WithLabelValues(outcome).Inc()
	}

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket client",
			zap.String("inventory_id", group.String()),
			zap.String("user_id", c.userID.String()),
		)
		if h.metrics != nil {
			h.metrics.RealtimeDropped.Inc()
		}
		h.unregister(c)
	}
}

// Members reports how many connections are subscribed to group.
func (h *Hub) Members(group uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// Shutdown disconnects every client and refuses later registrations.
// Write pumps send a close frame and exit; read pumps then fail and
// unregister.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.shutdown = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	h.logger.Info("realtime hub shut down", zap.Int("clients", len(clients)))
}
