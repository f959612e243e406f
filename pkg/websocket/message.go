package websocket

import "time"

// Envelope - сообщение клиенту: тип определяет, как фронтенд его разберёт.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Handler обрабатывает входящие сообщения одного соединения.
type Handler interface {
	HandleMessage(data []byte)
	// Invalidate - данные списка изменились где-то ещё, нужно перечитать.
	Invalidate()
	Close()
}
