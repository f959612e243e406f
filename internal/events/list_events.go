package events

import "encoding/json"

const (
	MutationEventName = "list.mutation"
	ExportEventName   = "list.export"
)

// MutationEvent - успешное изменение сущности через admin API.
type MutationEvent struct {
	UserKey    string
	RequestID  string
	Resource   string
	Action     string
	ResourceID *int64
	Payload    json.RawMessage
}

func (e MutationEvent) Name() string { return MutationEventName }

// ExportEvent - выгрузка списка в файл.
type ExportEvent struct {
	UserKey   string
	RequestID string
	Resource  string
	Format    string
	Rows      int
	Selected  int
	Filters   map[string]any
}

func (e ExportEvent) Name() string { return ExportEventName }
