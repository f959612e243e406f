package entities

import "time"

type TaxFreeStatus string

const (
	TaxFreePending  TaxFreeStatus = "pending"
	TaxFreeApproved TaxFreeStatus = "approved"
	TaxFreeRejected TaxFreeStatus = "rejected"
)

type TaxFreeRequest struct {
	ID            int64         `json:"id"`
	OrderID       int64         `json:"order_id"`
	OrderNumber   string        `json:"order_number,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	CountryID     *int64        `json:"country_id,omitempty"`
	Amount        float64       `json:"amount"`
	RefundAmount  *float64      `json:"refund_amount,omitempty"`
	Status        TaxFreeStatus `json:"status"`
	RejectReason  string        `json:"reject_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	ProcessedAt   *time.Time    `json:"processed_at,omitempty"`
}

func (r TaxFreeRequest) GetID() int64 { return r.ID }
