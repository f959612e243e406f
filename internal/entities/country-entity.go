package entities

import "time"

type Country struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Code         string     `json:"code"`
	Currency     string     `json:"currency,omitempty"`
	VatRate      *float64   `json:"vat_rate,omitempty"`
	TaxFreeLimit *float64   `json:"tax_free_limit,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (c Country) GetID() int64 { return c.ID }
