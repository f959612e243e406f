package dto

import "github.com/aarondl/null/v8"

type CreateHelpArticleDTO struct {
	Title       string      `json:"title"`
	Slug        null.String `json:"slug"`
	CategoryID  null.Int64  `json:"categoryId"`
	Body        string      `json:"body"`
	Language    null.String `json:"language"`
	IsPublished bool        `json:"isPublished"`
}

type UpdateHelpArticleDTO struct {
	Title       null.String `json:"title"`
	Slug        null.String `json:"slug"`
	CategoryID  null.Int64  `json:"categoryId"`
	Body        null.String `json:"body"`
	Language    null.String `json:"language"`
	IsPublished null.Bool   `json:"isPublished"`
}

func (d UpdateHelpArticleDTO) Payload() map[string]interface{} {
	p := make(map[string]interface{})
	putString(p, "title", d.Title)
	putString(p, "slug", d.Slug)
	putInt(p, "categoryId", d.CategoryID)
	putString(p, "body", d.Body)
	putString(p, "language", d.Language)
	putBool(p, "isPublished", d.IsPublished)
	return p
}

// ImageMetaDTO уходит полем data рядом с файлом.
type ImageMetaDTO struct {
	Alt string `json:"alt,omitempty"`
}
