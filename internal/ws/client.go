package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024 // zone commands are tiny
	sendBuffer     = 256
)

// Client is one viewer connection. It receives arena snapshots and, once
// in a room, may operate that room's zones.
type Client struct {
	ID   string
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte

	dropped atomic.Int64

	// sendMu guards Send against a close racing a room broadcast.
	sendMu sync.RWMutex
	closed bool
}

// NewClient creates a new Client.
func NewClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, sendBuffer),
	}
}

// ReadPump forwards zone and lobby commands to the hub until the
// connection fails or the peer stops answering pings.
func (c *Client) ReadPump() {
	defer func() {
		c.unregister()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read error", "client", c.ID, "error", err)
			}
			return
		}
		if !c.forward(data) {
			return
		}
	}
}

// forward hands a message to the hub. It reports false once the hub has
// stopped.
func (c *Client) forward(data []byte) bool {
	select {
	case <-c.Hub.Done():
		return false
	default:
	}
	select {
	case c.Hub.Incoming <- &ClientMessage{Client: c, Data: data}:
		return true
	case <-c.Hub.Done():
		return false
	}
}

// unregister tells the hub this client is gone, unless the hub has already
// stopped.
func (c *Client) unregister() {
	select {
	case c.Hub.Unregister <- c:
	case <-c.Hub.Done():
	}
}

// WritePump writes queued messages and keepalive pings. It exits when the
// send queue is closed by the hub or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.Debug("websocket write failed", "client", c.ID, "error", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues a Message for this client. Snapshots go out every
// tick, so a slow viewer loses messages rather than stalling the room.
func (c *Client) SendMessage(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal message", "type", msg.Type, "error", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw queues an already encoded message and reports whether it fit.
func (c *Client) SendRaw(data []byte) bool {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.closed {
		return false
	}

	select {
	case c.Send <- data:
		return true
	default:
		// first drop, then every hundredth
		if n := c.dropped.Add(1); n == 1 || n%100 == 0 {
			slog.Warn("client send buffer full, dropping message", "client", c.ID, "dropped", n)
		}
		return false
	}
}

// closeSend closes the send queue once. Later sends are discarded.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// Dropped returns how many messages were discarded for this client.
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// ClientMessage wraps a raw message with its source client.
type ClientMessage struct {
	Client *Client
	Data   []byte
}
