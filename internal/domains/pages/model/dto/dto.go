package dto

import (
	"github.com/google/uuid"

	"basecamp/internal/domains/pages/model"
	"basecamp/shared"
	gDto "basecamp/shared/dto"
	gModel "basecamp/shared/model"
	"basecamp/shared/timezone"
)

type CreatePageRequest struct {
	Title     string `json:"title"     validate:"required,min=3,max=150"`
	Body      string `json:"body"      validate:"required"`
	Published *bool  `json:"published"`
}

func (c *CreatePageRequest) ToModel(user string) model.Page {
	published := true
	if c.Published != nil {
		published = *c.Published
	}

	return model.Page{
		ID:        uuid.NewString(),
		Title:     c.Title,
		Slug:      shared.Slugify(c.Title),
		Body:      c.Body,
		Published: published,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePageRequest struct {
	Title     string `db:"title"     json:"title"     validate:"omitempty,min=3,max=150"`
	Body      string `db:"body"      json:"body"      validate:"omitempty"`
	Published *bool  `db:"published" json:"published"`
}

type PageResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	gDto.Metadata
}

func (r *PageResponse) FromModel(model model.Page) {
	r.ID = model.ID
	r.Title = model.Title
	r.Slug = model.Slug
	r.Body = model.Body
	r.Published = model.Published
	r.Metadata.FromModel(model.Metadata)
}

type GetPagesResponse struct {
	Pages      []PageResponse  `json:"pages"`
	Pagination gDto.Pagination `json:"pagination"`
}

func (r *GetPagesResponse) FromModels(models []model.Page, page, limit, totalItems int) {
	r.Pages = make([]PageResponse, len(models))
	for i, m := range models {
		r.Pages[i].FromModel(m)
	}

	r.Pagination.FromCounts(page, limit, totalItems)
}
