package dto

import (
	"encoding/json"
	"time"
)

type AuditEntryDTO struct {
	ID         int64           `json:"id"`
	User       string          `json:"user"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID *int64          `json:"resource_id,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

func FormatTime(t time.Time) string { return t.Format(time.RFC3339) }
