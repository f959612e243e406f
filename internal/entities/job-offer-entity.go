package entities

import "time"

type JobOffer struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Department     string     `json:"department,omitempty"`
	Location       string     `json:"location,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	Description    string     `json:"description,omitempty"`
	IsPublished    bool       `json:"is_published"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func (j JobOffer) GetID() int64 { return j.ID }
