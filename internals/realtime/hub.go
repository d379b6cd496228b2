package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

const (
	sendBuffer = 32
	writeWait  = 10 * time.Second
	pingEvery  = 30 * time.Second
)

// frameWriter is the part of *websocket.Conn the writer goroutine uses.
type frameWriter interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type Client struct {
	ID    string
	Topic string

	send   chan []byte
	closed chan struct{}
	once   sync.Once
}

func newClient(topic string) *Client {
	return &Client{
		ID:     uuid.NewString(),
		Topic:  topic,
		send:   make(chan []byte, sendBuffer),
		closed: make(chan struct{}),
	}
}

// Send queues msg. A client that cannot keep up is closed rather than
// stalling the sender.
func (c *Client) Send(msg any) bool {
	b, err := sonic.Marshal(msg)
	if err != nil {
		log.Printf("[WS] marshal: %v", err)
		return false
	}
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.send <- b:
		return true
	default:
		log.Printf("[WS] client %s lent, fermeture", c.ID)
		c.Close()
		return false
	}
}

func (c *Client) Close() {
	c.once.Do(func() { close(c.closed) })
}

func (c *Client) Done() <-chan struct{} { return c.closed }

// writePump is the only goroutine that writes to the connection.
func (c *Client) writePump(w frameWriter) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	// unblocks the read loop in Serve
	defer w.Close()
	for {
		select {
		case <-c.closed:
			return
		case b := <-c.send:
			_ = w.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.WriteMessage(websocket.TextMessage, b); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			_ = w.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Hub tracks live clients by topic (entity table).
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	if h.clients[c.Topic] == nil {
		h.clients[c.Topic] = make(map[*Client]struct{})
	}
	h.clients[c.Topic][c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients[c.Topic], c)
	if len(h.clients[c.Topic]) == 0 {
		delete(h.clients, c.Topic)
	}
	h.mu.Unlock()
	c.Close()
}

// Broadcast sends msg to every client of topic, or to all clients when
// topic is empty.
func (h *Hub) Broadcast(topic string, msg any) int {
	h.mu.RLock()
	var targets []*Client
	for t, set := range h.clients {
		if topic != "" && t != topic {
			continue
		}
		for c := range set {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	n := 0
	for _, c := range targets {
		if c.Send(msg) {
			n++
		}
	}
	return n
}

// Count returns the clients of topic, or of every topic when empty.
func (h *Hub) Count(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if topic != "" {
		return len(h.clients[topic])
	}
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Serve runs one websocket connection until it closes and returns only
// after the writer goroutine has stopped. onOpen runs after registration;
// the returned func, if any, runs on close.
func (h *Hub) Serve(conn *websocket.Conn, topic string, onOpen func(*Client) func()) {
	c := newClient(topic)
	h.register(c)
	defer h.unregister(c)

	var onClose func()
	if onOpen != nil {
		onClose = onOpen(c)
	}
	if onClose != nil {
		defer onClose()
	}

	// The conn goes back to the upgrader's pool once Serve returns, so the
	// writer must be gone by then.
	written := make(chan struct{})
	go func() {
		defer close(written)
		c.writePump(conn)
	}()
	defer func() {
		c.Close()
		<-written
	}()

	// Reads only detect the close; clients never send data.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
