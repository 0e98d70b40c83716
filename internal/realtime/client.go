package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lalith-99/inventra/internal/service"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 << 10
	sendBuffer     = 64

	// publishTimeout bounds the storage work behind one send frame.
	publishTimeout = 5 * time.Second
)

// Client is one websocket connection. userID is uuid.Nil for guests, who
// may join a group and read but not send.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	userID  uuid.UUID
	limiter *rate.Limiter

	// group is guarded by hub.mu.
	group uuid.UUID

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		userID:  userID,
		limiter: rate.NewLimiter(hub.sendRate, hub.sendBurst),
		send:    make(chan []byte, sendBuffer),
	}
}

// enqueue hands msg to the write pump without blocking. It reports false
// when the buffer is full; a closed client silently discards.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// reply queues a frame for this client only, dropping the client if it
// cannot keep up.
func (c *Client) reply(msg []byte) {
	if !c.enqueue(msg) {
		c.hub.unregister(c)
	}
}

func (c *Client) handleFrame(ctx context.Context, raw []byte) {
	var in InboundFrame
	if err := json.Unmarshal(raw, &in); err != nil {
		c.reply(errorFrame("malformed frame"))
		return
	}

	switch in.Type {
	case FrameJoin:
		inventoryID, err := uuid.Parse(in.InventoryID)
		if err != nil {
			c.reply(errorFrame("invalid inventory_id"))
			return
		}
		c.hub.join(c, inventoryID)
		c.reply(encode(OutboundFrame{Type: FrameJoined, InventoryID: inventoryID.String()}))

	case FrameSend:
		if c.userID == uuid.Nil {
			c.reply(errorFrame("authentication required"))
			return
		}
		inventoryID, err := uuid.Parse(in.InventoryID)
		if err != nil {
			c.reply(errorFrame("invalid inventory_id"))
			return
		}
		if !c.limiter.Allow() {
			c.reply(errorFrame("rate limit exceeded"))
			return
		}

		pctx, cancel := context.WithTimeout(ctx, publishTimeout)
		err = c.hub.Publish(pctx, inventoryID, c.userID, in.Content)
		cancel()
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.reply(errorFrame("inventory not found"))
		case err != nil:
			c.hub.logger.Error("failed to publish discussion post",
				zap.String("inventory_id", inventoryID.String()),
				zap.String("user_id", c.userID.String()),
				zap.Error(err),
			)
			c.reply(errorFrame("failed to post message"))
		}

	default:
		c.reply(errorFrame("unknown frame type"))
	}
}

// readPump processes frames until the connection fails or closes, then
// unregisters the client.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		mt, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		c.handleFrame(ctx, msg)
	}
}

// writePump is the only goroutine that writes to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
