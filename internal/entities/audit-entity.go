package entities

import (
	"encoding/json"
	"time"
)

// AuditEntry - запись журнала действий в бэк-офисе.
type AuditEntry struct {
	ID         int64           `json:"id"`
	UserKey    string          `json:"user"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID *int64          `json:"resource_id,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
