package model

import (
	gModel "basecamp/shared/model"
)

const (
	TableName  = "pages"
	EntityName = "page"

	FieldID        = "id"
	FieldTitle     = "title"
	FieldSlug      = "slug"
	FieldBody      = "body"
	FieldPublished = "published"
	FieldCreatedAt = "created_at"
)

// Page is a block of static site content, addressed by slug.
type Page struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Slug      string `db:"slug"`
	Body      string `db:"body"`
	Published bool   `db:"published"`
	gModel.Metadata
}
