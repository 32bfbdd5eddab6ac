package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"basecamp/infras/otel"
	"basecamp/infras/postgres"
	"basecamp/internal/domains/inquiries/model"
	gDto "basecamp/shared/dto"
	gRepo "basecamp/shared/repository"
)

type Inquiry interface {
	Insert(ctx context.Context, model model.Inquiry) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Inquiry, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Inquiry, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Inquiry]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Inquiry {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Inquiry](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
