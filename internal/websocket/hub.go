package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"booknest-be/internal/pkg/logger"
	"booknest-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel relays per-member notices across instances when more than
// one process serves websocket traffic.
const clusterChannel = "booknest:cluster_events"

// Hub tracks connected shelf clients per member (multi-device) and delivers
// library-changed notices to them.
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional cross-instance relay. Nil means single-instance delivery.
	rdb *redis.Client

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
	if h.rdb != nil {
		go h.subscribeToCluster()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.MemberID] = append(h.clients[client.MemberID], client)
			h.mu.Unlock()
			h.logger.Info("hub", "client registered", map[string]interface{}{"member_id": client.MemberID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.MemberID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.MemberID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.MemberID]) == 0 {
					delete(h.clients, client.MemberID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyMember delivers a library event to every device the member has open.
// Implements the consumer's notifier contract.
func (h *Hub) NotifyMember(memberId uuid.UUID, event events.BaseEvent) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "library_event",
		"data": event,
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	clients, localFound := h.clients[memberId]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("hub", "client send buffer full, dropping", map[string]interface{}{"member_id": memberId})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_member_id": memberId.String(),
			"message":          json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

func (h *Hub) subscribeToCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetMemberID string          `json:"target_member_id"`
			Message        json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("hub", "cluster message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}

		memberId, err := uuid.Parse(payload.TargetMemberID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[memberId]
		h.mu.RUnlock()
		for _, client := range clients {
			select {
			case client.Send <- payload.Message:
			default:
				close(client.Send)
				h.unregister <- client
			}
		}
	}
}
