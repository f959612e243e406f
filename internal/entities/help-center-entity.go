package entities

import "time"

type HelpCategory struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	Position int    `json:"position"`
}

func (c HelpCategory) GetID() int64 { return c.ID }

type HelpArticle struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	CategoryID  *int64     `json:"categoryId,omitempty"`
	Body        string     `json:"body,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	IsPublished bool       `json:"isPublished"`
	Language    string     `json:"language,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (a HelpArticle) GetID() int64 { return a.ID }
