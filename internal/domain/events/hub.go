package events

import (
	"context"
	"encoding/json"
	"expvar"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel carries events between the API and the sync worker
const Channel = "gallery:events"

var (
	wsConnectionsGauge   = expvar.NewInt("gallery_ws_connections")
	wsEventsSentTotal    = expvar.NewInt("gallery_ws_events_sent_total")
	wsEventsDroppedTotal = expvar.NewInt("gallery_ws_events_dropped_total")
)

// Client is one websocket subscriber
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// NewClient creates a client with a buffered send queue
func NewClient(conn *websocket.Conn) *Client {
	return &Client{Conn: conn, Send: make(chan []byte, 64)}
}

// Hub fans events out to websocket clients, through redis when configured
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	redis   *redis.Client
}

// NewHub creates a hub; redisClient may be nil
func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		redis:   redisClient,
	}
}

// Run relays redis events to local clients until ctx is done (call in goroutine)
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		<-ctx.Done()
		return
	}

	pubsub := h.redis.Subscribe(ctx, Channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcastLocal([]byte(msg.Payload))
		}
	}
}

// Register adds a client
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	wsConnectionsGauge.Add(1)
}

// Unregister removes a client and closes its send queue
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		wsConnectionsGauge.Add(-1)
	}
}

// ClientCount returns the number of local clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish sends event to every client on every API instance
func (h *Hub) Publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(event.Type)).Msg("Failed to marshal event")
		return
	}

	if h.redis != nil {
		err := h.redis.Publish(ctx, Channel, data).Err()
		if err == nil {
			return
		}
		log.Error().Err(err).Str("channel", Channel).Msg("Redis publish failed")
	}
	// No redis or publish failed: local only
	h.broadcastLocal(data)
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.Send <- data:
			wsEventsSentTotal.Add(1)
		default:
			// Buffer full, skip this message
			wsEventsDroppedTotal.Add(1)
		}
	}
}

// RedisPublisher publishes to the events channel without serving clients (sync worker)
type RedisPublisher struct {
	client *redis.Client
}

// NewPublisher returns a redis publisher, or Nop without redis
func NewPublisher(client *redis.Client) Publisher {
	if client == nil {
		return Nop{}
	}
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := p.client.Publish(ctx, Channel, data).Err(); err != nil {
		log.Warn().Err(err).Str("event_type", string(event.Type)).Msg("Redis publish failed")
	}
}
