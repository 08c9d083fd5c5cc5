package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Harikowshik052/investment-deal-pipeline/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "board_events"

// Event is a real-time board event sent to WebSocket subscribers
type Event struct {
	Type    string      `json:"type"`    // "deal.created", "deal.updated", "deal.deleted", "comment.created", "vote.cast"
	BoardID uint64      `json:"board_id"`
	Payload interface{} `json:"payload"`
}

// Hub manages WebSocket clients grouped by board and broadcasts board
// events to them. With Redis present, events also fan out across instances
// through pub/sub.
type Hub struct {
	// Registered clients grouped by board ID
	clients map[uint64]map[*Client]bool

	// Register/unregister channels
	register   chan *Client
	unregister chan *Client

	// Broadcast to one board's subscribers
	broadcast chan *Event

	mu          sync.RWMutex
	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uint64]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *Event, 256),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// PublishBoard broadcasts an event to a board's subscribers. It satisfies
// the service layer's Broadcaster interface.
func (h *Hub) PublishBoard(boardID uint64, eventType string, payload interface{}) {
	event := &Event{Type: eventType, BoardID: boardID, Payload: payload}

	if h.redisClient != nil {
		if data, err := json.Marshal(event); err == nil {
			if err := h.redisClient.Publish(h.ctx, redisPubSubChannel, data).Err(); err != nil {
				logger.Warn("redis publish failed: %v", err)
			}
			return // the subscriber loop delivers locally too
		}
	}

	h.broadcast <- event
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	// Redis subscriber mirrors events from other instances
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.boardID] == nil {
				h.clients[client.boardID] = make(map[*Client]bool)
			}
			h.clients[client.boardID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.boardID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.boardID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.deliver(event)

		case <-h.ctx.Done():
			return
		}
	}
}

// Stop shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}

func (h *Hub) deliver(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[event.BoardID] {
		select {
		case client.send <- data:
		default:
			// slow consumer, drop the event for this client
		}
	}
}

func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn("bad board event payload: %v", err)
				continue
			}
			h.deliver(&event)
		case <-h.ctx.Done():
			return
		}
	}
}
