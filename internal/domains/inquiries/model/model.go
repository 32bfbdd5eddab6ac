package model

import (
	gModel "basecamp/shared/model"
)

const (
	TableName  = "inquiries"
	EntityName = "inquiry"

	FieldID         = "id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldPackageID  = "package_id"
	FieldTravelDate = "travel_date"
	FieldMessage    = "message"
	FieldStatus     = "status"
	FieldCreatedAt  = "created_at"
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

// Inquiry is a contact request submitted from the public site, optionally
// tied to a specific package.
type Inquiry struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Phone      string  `db:"phone"`
	PackageID  *string `db:"package_id"`
	TravelDate *string `db:"travel_date"`
	Message    string  `db:"message"`
	Status     string  `db:"status"`
	gModel.Metadata
}
