// Package ws provides WebSocket support using gorilla/websocket.
//
// The hub groups connections by topic, so a shop dashboard can subscribe to
// just its own order feed:
//
//	// route:
//	router.Get("/ws/shops/{id}/orders", "ws.shop.orders", ctx.Wrap(func(c *ctx.Context) {
//	    ws.Upgrade(c.W, c.R, OrderFeed, "shop:"+c.Param("id"))
//	}))
//
//	// broadcast from anywhere:
//	ws.OrderFeed.Publish("shop:42", payload)
package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shashiranjanraj/supplyco/pkg/logger"
	"github.com/shashiranjanraj/supplyco/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default. Restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Client represents a single connected WebSocket client.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	topic string
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			break
		}
		// The order feed is one-way; inbound frames are ignored.
	}
}

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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
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

type publishMsg struct {
	topic string
	data  []byte
}

// Hub maintains active WebSocket connections grouped by topic.
type Hub struct {
	topics     map[string]map[*Client]bool
	publish    chan publishMsg
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		publish:    make(chan publishMsg, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub event loop. Must run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.topics[client.topic] == nil {
				h.topics[client.topic] = make(map[*Client]bool)
			}
			h.topics[client.topic][client] = true
			metrics.WSConnections.Inc()

		case client := <-h.unregister:
			if clients, ok := h.topics[client.topic]; ok && clients[client] {
				delete(clients, client)
				close(client.send)
				if len(clients) == 0 {
					delete(h.topics, client.topic)
				}
				metrics.WSConnections.Dec()
			}

		case msg := <-h.publish:
			for client := range h.topics[msg.topic] {
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer, drop it.
					close(client.send)
					delete(h.topics[msg.topic], client)
					metrics.WSConnections.Dec()
				}
			}
		}
	}
}

// Publish marshals v to JSON and sends it to every client on the topic.
func (h *Hub) Publish(topic string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("ws: marshal publish payload", "topic", topic, "error", err)
		return
	}
	h.publish <- publishMsg{topic: topic, data: data}
}

// Upgrade upgrades an HTTP connection to a WebSocket subscribed to topic.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, topic string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256), topic: topic}
	hub.register <- client
	go client.writePump()
	go client.readPump()
}
