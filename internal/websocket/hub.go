package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const alertChannel = "monitor_alerts"

// Hub fans monitoring alerts out to connected dashboard clients. With Redis
// configured, alerts published on one instance reach clients on every
// instance.
type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Dashboard client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastAlert sends a monitoring alert to ALL connected dashboard clients
// and mirrors it to other instances through Redis.
func (h *Hub) BroadcastAlert(alert dto.MonitorAlertDTO) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "monitor_alert",
		"data": alert,
	})

	h.deliverLocal(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), alertChannel, data)
	}
}

func (h *Hub) deliverLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client send buffer full, dropping alert", map[string]interface{}{"user_id": client.UserID})
			}
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, alertChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		if !json.Valid([]byte(msg.Payload)) {
			log.Printf("Redis alert parse error: invalid payload")
			continue
		}
		h.deliverLocal([]byte(msg.Payload))
	}
}
