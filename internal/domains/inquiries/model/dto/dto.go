package dto

import (
	"github.com/google/uuid"

	"basecamp/internal/domains/inquiries/model"
	gDto "basecamp/shared/dto"
	gModel "basecamp/shared/model"
	"basecamp/shared/timezone"
)

type CreateInquiryRequest struct {
	Name       string  `json:"name"        validate:"required,min=2,max=120"`
	Email      string  `json:"email"       validate:"required,email"`
	Phone      string  `json:"phone"       validate:"omitempty,max=30"`
	PackageID  *string `json:"package_id"  validate:"omitempty,uuid"`
	TravelDate *string `json:"travel_date" validate:"omitempty,datetime=2006-01-02"`
	Message    string  `json:"message"     validate:"required,max=4000"`
}

func (c *CreateInquiryRequest) ToModel() model.Inquiry {
	return model.Inquiry{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		PackageID:  c.PackageID,
		TravelDate: c.TravelDate,
		Message:    c.Message,
		Status:     model.StatusNew,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

type InquiryResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	PackageID  *string `json:"package_id,omitempty"`
	TravelDate *string `json:"travel_date,omitempty"`
	Message    string  `json:"message"`
	Status     string  `json:"status"`
	gDto.Metadata
}

func (r *InquiryResponse) FromModel(model model.Inquiry) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.PackageID = model.PackageID
	r.TravelDate = model.TravelDate
	r.Message = model.Message
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetInquiriesResponse struct {
	Inquiries  []InquiryResponse `json:"inquiries"`
	Pagination gDto.Pagination   `json:"pagination"`
}

func (r *GetInquiriesResponse) FromModels(models []model.Inquiry, page, limit, totalItems int) {
	r.Inquiries = make([]InquiryResponse, len(models))
	for i, m := range models {
		r.Inquiries[i].FromModel(m)
	}

	r.Pagination.FromCounts(page, limit, totalItems)
}

// InquiryReceivedEvent is the payload published when a new inquiry lands.
type InquiryReceivedEvent struct {
	InquiryID  string  `json:"inquiry_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	PackageID  *string `json:"package_id,omitempty"`
	TravelDate *string `json:"travel_date,omitempty"`
	CreatedAt  string  `json:"created_at"`
}
