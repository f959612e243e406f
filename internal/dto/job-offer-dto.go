package dto

import "github.com/aarondl/null/v8"

type CreateJobOfferDTO struct {
	Title          string      `json:"title"`
	Department     null.String `json:"department"`
	Location       null.String `json:"location"`
	EmploymentType null.String `json:"employment_type"`
	Description    null.String `json:"description"`
	IsPublished    bool        `json:"is_published"`
}

type UpdateJobOfferDTO struct {
	Title          null.String `json:"title"`
	Department     null.String `json:"department"`
	Location       null.String `json:"location"`
	EmploymentType null.String `json:"employment_type"`
	Description    null.String `json:"description"`
}

func (d UpdateJobOfferDTO) Payload() map[string]interface{} {
	p := make(map[string]interface{})
	putString(p, "title", d.Title)
	putString(p, "department", d.Department)
	putString(p, "location", d.Location)
	putString(p, "employment_type", d.EmploymentType)
	putString(p, "description", d.Description)
	return p
}
