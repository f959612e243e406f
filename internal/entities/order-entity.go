package entities

import "time"

// Order - заказ в том виде, в каком его отдаёт v2/admin/orders.
type Order struct {
	ID            int64        `json:"id"`
	Number        string       `json:"number"`
	Status        *OrderStatus `json:"status,omitempty"`
	StatusID      int64        `json:"statusId"`
	StoreID       *int64       `json:"storeId,omitempty"`
	StoreName     string       `json:"storeName,omitempty"`
	CustomerID    *int64       `json:"customerId,omitempty"`
	CustomerName  string       `json:"customerName,omitempty"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
	GroupID       *int64       `json:"groupId,omitempty"`
	Total         float64      `json:"total"`
	Currency      string       `json:"currency"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     *time.Time   `json:"updated_at,omitempty"`
}

func (o Order) GetID() int64 { return o.ID }

// StatusName - имя статуса из вложенного объекта или из справочника.
func (o Order) StatusName(statuses map[int64]string) string {
	if o.Status != nil && o.Status.Name != "" {
		return o.Status.Name
	}
	if name, ok := statuses[o.StatusID]; ok {
		return name
	}
	return ""
}
