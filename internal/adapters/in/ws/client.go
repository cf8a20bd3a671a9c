package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// client keeps the latest unsent frame of each type. A slow connection
// skips intermediate snapshots instead of queueing them.
type client struct {
	conn *websocket.Conn

	mu      sync.Mutex
	pending map[string][]byte
	order   []string
	signal  chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:    conn,
		pending: make(map[string][]byte),
		signal:  make(chan struct{}, 1),
	}
}

func (c *client) push(frameType string, data any) {
	payload, err := json.Marshal(Frame{Type: frameType, Data: data})
	if err != nil {
		return
	}

	c.mu.Lock()
	if _, queued := c.pending[frameType]; !queued {
		c.order = append(c.order, frameType)
	}
	c.pending[frameType] = payload
	c.mu.Unlock()

	select {
	case c.signal <- struct{}{}:
	default:
	}
}

func (c *client) take() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	frames := make([][]byte, 0, len(c.order))
	for _, frameType := range c.order {
		frames = append(frames, c.pending[frameType])
	}
	c.pending = make(map[string][]byte)
	c.order = c.order[:0]
	return frames
}

// readPump discards client messages and returns when the connection
// closes or stops answering pings.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	// Frames queued by the initial snapshots.
	select {
	case c.signal <- struct{}{}:
	default:
	}
	for {
		select {
		case <-ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return
		case <-c.signal:
			for _, frame := range c.take() {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
					return
				}
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) closeWith(code int, reason string) {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
	_ = c.conn.Close()
}
