package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

// Client - одно WebSocket-соединение живого списка.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	UserKey string
	Scope   string

	handler Handler
	logger  *zap.Logger
	mu      sync.Mutex
	closed  bool
}

func NewClient(hub *Hub, conn *websocket.Conn, userKey, scope string, logger *zap.Logger) *Client {
	return &Client{
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, sendBuffer),
		UserKey: userKey,
		Scope:   scope,
		logger:  logger,
	}
}

func (c *Client) SetHandler(h Handler) { c.handler = h }

// SendEnvelope ставит сообщение в очередь. Если клиент не успевает читать,
// сообщение отбрасывается: следующее состояние всё равно придёт целиком.
func (c *Client) SendEnvelope(msgType string, payload interface{}) {
	data, err := json.Marshal(Envelope{Type: msgType, Payload: payload, Timestamp: time.Now().UTC()})
	if err != nil {
		c.logger.Error("Ошибка сериализации сообщения для WebSocket", zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		c.logger.Warn("Очередь WebSocket переполнена, сообщение отброшено", zap.String("type", msgType))
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		if c.handler != nil {
			c.handler.Close()
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { return c.Conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket: соединение закрыто с ошибкой", zap.Error(err))
			}
			return
		}
		if c.handler != nil {
			c.handler.HandleMessage(message)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
