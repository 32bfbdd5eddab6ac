package dto

import (
	"github.com/google/uuid"

	"basecamp/internal/domains/assets/model"
	gDto "basecamp/shared/dto"
	gModel "basecamp/shared/model"
	"basecamp/shared/timezone"
)

type CreateAssetRequest struct {
	Section   string `json:"section"    validate:"required,oneof=gallery banner recognition about"`
	Title     string `json:"title"      validate:"omitempty,max=150"`
	AltText   string `json:"alt_text"   validate:"omitempty,max=255"`
	LinkURL   string `json:"link_url"   validate:"omitempty,url"`
	SortIndex int    `json:"sort_index" validate:"omitempty,min=0"`
	Active    *bool  `json:"active"`
}

func (c *CreateAssetRequest) ToModel(user string) model.Asset {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Asset{
		ID:        uuid.NewString(),
		Section:   c.Section,
		Title:     c.Title,
		AltText:   c.AltText,
		LinkURL:   c.LinkURL,
		SortIndex: c.SortIndex,
		Active:    active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateAssetRequest struct {
	Section   string `db:"section"    json:"section"    validate:"omitempty,oneof=gallery banner recognition about"`
	Title     string `db:"title"      json:"title"      validate:"omitempty,max=150"`
	AltText   string `db:"alt_text"   json:"alt_text"   validate:"omitempty,max=255"`
	LinkURL   string `db:"link_url"   json:"link_url"   validate:"omitempty,url"`
	SortIndex *int   `db:"sort_index" json:"sort_index" validate:"omitempty,min=0"`
	Active    *bool  `db:"active"     json:"active"`
}

type AssetResponse struct {
	ID        string `json:"id"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	AltText   string `json:"alt_text"`
	LinkURL   string `json:"link_url,omitempty"`
	ImageURL  string `json:"image_url"`
	SortIndex int    `json:"sort_index"`
	Active    bool   `json:"active"`
	gDto.Metadata
}

func (r *AssetResponse) FromModel(model model.Asset) {
	r.ID = model.ID
	r.Section = model.Section
	r.Title = model.Title
	r.AltText = model.AltText
	r.LinkURL = model.LinkURL
	r.ImageURL = model.ImageURL
	r.SortIndex = model.SortIndex
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetAssetsResponse struct {
	Assets     []AssetResponse `json:"assets"`
	Pagination gDto.Pagination `json:"pagination"`
}

func (r *GetAssetsResponse) FromModels(models []model.Asset, page, limit, totalItems int) {
	r.Assets = make([]AssetResponse, len(models))
	for i, m := range models {
		r.Assets[i].FromModel(m)
	}

	r.Pagination.FromCounts(page, limit, totalItems)
}

type SectionAssetsResponse struct {
	Section string          `json:"section"`
	Assets  []AssetResponse `json:"assets"`
}

func (r *SectionAssetsResponse) FromModels(section string, models []model.Asset) {
	r.Section = section
	r.Assets = make([]AssetResponse, len(models))
	for i, m := range models {
		r.Assets[i].FromModel(m)
	}
}

type UploadAssetImageResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
