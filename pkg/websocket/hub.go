package websocket

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Hub знает все открытые живые списки, сгруппированные по scope.
type Hub struct {
	clients      map[*Client]bool
	scopeClients map[string][]*Client
	Register     chan *Client
	unregister   chan *Client
	done         chan struct{}
	mu           sync.RWMutex
	logger       *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		scopeClients: make(map[string][]*Client),
		Register:     make(chan *Client),
		unregister:   make(chan *Client),
		done:         make(chan struct{}),
		logger:       logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.close()
			}
			h.clients = make(map[*Client]bool)
			h.scopeClients = make(map[string][]*Client)
			h.mu.Unlock()
			return
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.scopeClients[client.Scope] = append(h.scopeClients[client.Scope], client)
			h.mu.Unlock()
			h.logger.Info("WebSocket: клиент зарегистрирован", zap.String("user", client.UserKey), zap.String("scope", client.Scope))
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Add регистрирует клиента; false - хаб уже остановлен.
func (h *Hub) Add(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister не блокируется, если хаб уже остановлен.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.close()

	clients := h.scopeClients[client.Scope]
	for i, c := range clients {
		if c == client {
			h.scopeClients[client.Scope] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.scopeClients[client.Scope]) == 0 {
		delete(h.scopeClients, client.Scope)
	}
	h.logger.Info("WebSocket: клиент отсоединён", zap.String("user", client.UserKey), zap.String("scope", client.Scope))
}

// Invalidate просит все открытые списки scope перечитать данные.
func (h *Hub) Invalidate(scope string) int {
	h.mu.RLock()
	clients := append([]*Client(nil), h.scopeClients[scope]...)
	h.mu.RUnlock()

	for _, c := range clients {
		if c.handler != nil {
			c.handler.Invalidate()
		}
	}
	return len(clients)
}

// Count - число открытых соединений по scope.
func (h *Hub) Count(scope string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.scopeClients[scope])
}
