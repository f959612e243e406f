package dto

import "github.com/aarondl/null/v8"

// Тела запросов повторяют поля API; бизнес-проверки делает бэкенд.
type CreateCountryDTO struct {
	Name         string       `json:"name"`
	Code         string       `json:"code"`
	Currency     null.String  `json:"currency"`
	VatRate      null.Float64 `json:"vat_rate"`
	TaxFreeLimit null.Float64 `json:"tax_free_limit"`
	IsActive     bool         `json:"is_active"`
}

type UpdateCountryDTO struct {
	Name         null.String  `json:"name"`
	Code         null.String  `json:"code"`
	Currency     null.String  `json:"currency"`
	VatRate      null.Float64 `json:"vat_rate"`
	TaxFreeLimit null.Float64 `json:"tax_free_limit"`
	IsActive     null.Bool    `json:"is_active"`
}

// Payload - только переданные поля.
func (d UpdateCountryDTO) Payload() map[string]interface{} {
	p := make(map[string]interface{})
	putString(p, "name", d.Name)
	putString(p, "code", d.Code)
	putString(p, "currency", d.Currency)
	putFloat(p, "vat_rate", d.VatRate)
	putFloat(p, "tax_free_limit", d.TaxFreeLimit)
	putBool(p, "is_active", d.IsActive)
	return p
}
