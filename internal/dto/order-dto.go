package dto

import "github.com/aarondl/null/v8"

type UpdateOrderStatusDTO struct {
	StatusID int64       `json:"statusId" validate:"required,gt=0"`
	Comment  null.String `json:"comment"`
}

func (d UpdateOrderStatusDTO) Payload() map[string]interface{} {
	p := map[string]interface{}{"statusId": d.StatusID}
	putString(p, "comment", d.Comment)
	return p
}

type ExportQueryDTO struct {
	Format string `query:"format" validate:"omitempty,oneof=csv xlsx"`
}
