package dto

import (
	"mime/multipart"
)

const (
	ResourceTypeImage = "image"
	ResourceTypeRaw   = "raw"
)

type UploadRequest struct {
	File       *multipart.FileHeader `json:"file" swaggerignore:"true" validate:"required"`
	FileHandle multipart.File        `json:"-"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type DeleteRequest struct {
	PublicID     string `json:"publicId"     validate:"required"`
	ResourceType string `json:"resourceType" validate:"omitempty,oneof=raw image"`
}
