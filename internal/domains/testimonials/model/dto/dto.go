package dto

import (
	"github.com/google/uuid"

	"basecamp/internal/domains/testimonials/model"
	gDto "basecamp/shared/dto"
	gModel "basecamp/shared/model"
	"basecamp/shared/timezone"
)

type CreateTestimonialRequest struct {
	Author    string `json:"author"     validate:"required,max=120"`
	Location  string `json:"location"   validate:"omitempty,max=120"`
	Quote     string `json:"quote"      validate:"required"`
	Rating    int    `json:"rating"     validate:"required,min=1,max=5"`
	SortIndex int    `json:"sort_index" validate:"omitempty,min=0"`
	Active    *bool  `json:"active"`
}

func (c *CreateTestimonialRequest) ToModel(user string) model.Testimonial {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Testimonial{
		ID:        uuid.NewString(),
		Author:    c.Author,
		Location:  c.Location,
		Quote:     c.Quote,
		Rating:    c.Rating,
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

type UpdateTestimonialRequest struct {
	Author    string `db:"author"     json:"author"     validate:"omitempty,max=120"`
	Location  string `db:"location"   json:"location"   validate:"omitempty,max=120"`
	Quote     string `db:"quote"      json:"quote"      validate:"omitempty"`
	Rating    *int   `db:"rating"     json:"rating"     validate:"omitempty,min=1,max=5"`
	SortIndex *int   `db:"sort_index" json:"sort_index" validate:"omitempty,min=0"`
	Active    *bool  `db:"active"     json:"active"`
}

type TestimonialResponse struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Location  string `json:"location,omitempty"`
	Quote     string `json:"quote"`
	Rating    int    `json:"rating"`
	AvatarURL string `json:"avatar_url,omitempty"`
	SortIndex int    `json:"sort_index"`
	Active    bool   `json:"active"`
	gDto.Metadata
}

func (r *TestimonialResponse) FromModel(model model.Testimonial) {
	r.ID = model.ID
	r.Author = model.Author
	r.Location = model.Location
	r.Quote = model.Quote
	r.Rating = model.Rating
	r.AvatarURL = model.AvatarURL
	r.SortIndex = model.SortIndex
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetTestimonialsResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
	Pagination   gDto.Pagination       `json:"pagination"`
}

func (r *GetTestimonialsResponse) FromModels(models []model.Testimonial, page, limit, totalItems int) {
	r.Testimonials = make([]TestimonialResponse, len(models))
	for i, m := range models {
		r.Testimonials[i].FromModel(m)
	}

	r.Pagination.FromCounts(page, limit, totalItems)
}

type PublicTestimonialsResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
}

func (r *PublicTestimonialsResponse) FromModels(models []model.Testimonial) {
	r.Testimonials = make([]TestimonialResponse, len(models))
	for i, m := range models {
		r.Testimonials[i].FromModel(m)
	}
}

type UploadAvatarResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
