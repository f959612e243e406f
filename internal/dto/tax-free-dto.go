package dto

import "github.com/aarondl/null/v8"

type ApproveTaxFreeDTO struct {
	RefundAmount null.Float64 `json:"refund_amount"`
}

func (d ApproveTaxFreeDTO) Payload() map[string]interface{} {
	p := make(map[string]interface{})
	putFloat(p, "refund_amount", d.RefundAmount)
	return p
}

type RejectTaxFreeDTO struct {
	Reason string `json:"reason" validate:"required"`
}
