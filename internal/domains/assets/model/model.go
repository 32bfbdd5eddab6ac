package model

import (
	gModel "basecamp/shared/model"
)

const (
	TableName  = "site_assets"
	EntityName = "asset"

	FieldID        = "id"
	FieldSection   = "section"
	FieldTitle     = "title"
	FieldAltText   = "alt_text"
	FieldLinkURL   = "link_url"
	FieldImageURL  = "image_url"
	FieldObjectKey = "object_key"
	FieldSortIndex = "sort_index"
	FieldActive    = "active"
	FieldCreatedAt = "created_at"
)

const (
	SectionGallery     = "gallery"
	SectionBanner      = "banner"
	SectionRecognition = "recognition"
	SectionAbout       = "about"
)

// Asset is a single image slot on the public site: a gallery photo, a
// hero banner, a recognition logo, or an about-page illustration.
type Asset struct {
	ID        string `db:"id"`
	Section   string `db:"section"`
	Title     string `db:"title"`
	AltText   string `db:"alt_text"`
	LinkURL   string `db:"link_url"`
	ImageURL  string `db:"image_url"`
	ObjectKey string `db:"object_key"`
	SortIndex int    `db:"sort_index"`
	Active    bool   `db:"active"`
	gModel.Metadata
}
