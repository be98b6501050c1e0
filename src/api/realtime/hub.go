// Package realtime fans mutation snapshots out to websocket subscribers.
// Clients subscribe to one topic per collection and receive the full
// serialized collection immediately, then again after every mutation.
// Delivery is fire-and-forget: a slow subscriber is dropped, never waited on.
package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Topic names, one per collection.
const (
	TopicPolicies     = "policies"
	TopicComplaints   = "complaints"
	TopicProposals    = "proposals"
	TopicTransactions = "transactions"
)

// SnapshotFunc returns the current full serialized collection for a topic,
// or ok=false for an unknown topic.
type SnapshotFunc func(topic string) (any, bool)

// envelope is the only server-to-client frame shape.
type envelope struct {
	Topic string `json:"topic"`
	Data  any    `json:"data"`
}

// inbound is the only client-to-server frame shape the hub understands.
type inbound struct {
	Event string `json:"event"`
	Topic string `json:"topic"`
}

type Hub struct {
	mu       sync.RWMutex
	topics   map[string]map[*client]struct{}
	snapshot SnapshotFunc
	upgrader websocket.Upgrader
}

func NewHub(allowedOrigin string, snapshot SnapshotFunc) *Hub {
	h := &Hub{
		topics:   make(map[string]map[*client]struct{}),
		snapshot: snapshot,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}
	return h
}

// HandleWS upgrades the request and services the connection until it closes.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := newClient(conn)
	slog.Info("realtime client connected", "remote", conn.RemoteAddr().String())

	go c.writePump()
	h.readPump(c)

	h.unregister(c)
	c.close()
	slog.Info("realtime client disconnected", "remote", conn.RemoteAddr().String())
}

func (h *Hub) readPump(c *client) {
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			slog.Warn("realtime: unreadable frame", "error", err)
			continue
		}
		if msg.Event != "subscribe" {
			continue
		}
		h.subscribe(c, msg.Topic)
	}
}

// subscribe registers the client on the topic and immediately queues the
// current collection snapshot for it.
func (h *Hub) subscribe(c *client, topic string) {
	snap, ok := h.snapshot(topic)
	if !ok {
		slog.Warn("realtime: subscribe to unknown topic", "topic", topic)
		return
	}

	h.mu.Lock()
	subs := h.topics[topic]
	if subs == nil {
		subs = make(map[*client]struct{})
		h.topics[topic] = subs
	}
	subs[c] = struct{}{}
	h.mu.Unlock()

	raw, err := json.Marshal(envelope{Topic: topic, Data: snap})
	if err != nil {
		slog.Error("realtime: marshal snapshot", "topic", topic, "error", err)
		return
	}
	if !c.trySend(raw) {
		h.unregister(c)
		c.close()
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, subs := range h.topics {
		delete(subs, c)
	}
}

// Publish pushes data to every subscriber of topic. It never blocks: a client
// whose buffer is full is dropped on the spot.
func (h *Hub) Publish(topic string, data any) {
	raw, err := json.Marshal(envelope{Topic: topic, Data: data})
	if err != nil {
		slog.Error("realtime: marshal publish", "topic", topic, "error", err)
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.topics[topic]))
	for c := range h.topics[topic] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.trySend(raw) {
			slog.Warn("realtime: dropping slow subscriber", "topic", topic)
			h.unregister(c)
			c.close()
		}
	}
}
