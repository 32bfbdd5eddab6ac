package model

import (
	gModel "basecamp/shared/model"
)

const (
	TableName  = "testimonials"
	EntityName = "testimonial"

	FieldID        = "id"
	FieldAuthor    = "author"
	FieldLocation  = "location"
	FieldQuote     = "quote"
	FieldRating    = "rating"
	FieldAvatarURL = "avatar_url"
	FieldAvatarKey = "avatar_key"
	FieldSortIndex = "sort_index"
	FieldActive    = "active"
	FieldCreatedAt = "created_at"
)

type Testimonial struct {
	ID        string `db:"id"`
	Author    string `db:"author"`
	Location  string `db:"location"`
	Quote     string `db:"quote"`
	Rating    int    `db:"rating"`
	AvatarURL string `db:"avatar_url"`
	AvatarKey string `db:"avatar_key"`
	SortIndex int    `db:"sort_index"`
	Active    bool   `db:"active"`
	gModel.Metadata
}
