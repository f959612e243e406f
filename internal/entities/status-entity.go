package entities

// OrderStatus - запись справочника admin/order-statuses.
type OrderStatus struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code,omitempty"`
	Color string `json:"color,omitempty"`
}

func (s OrderStatus) GetID() int64 { return s.ID }

// Store - магазин из справочника admin/stores.
type Store struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city,omitempty"`
	CountryID *int64 `json:"countryId,omitempty"`
}

func (s Store) GetID() int64 { return s.ID }
