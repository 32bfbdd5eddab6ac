package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"basecamp/infras/otel"
	"basecamp/infras/postgres"
	"basecamp/internal/domains/assets/model"
	gDto "basecamp/shared/dto"
	gRepo "basecamp/shared/repository"
)

type Asset interface {
	Insert(ctx context.Context, model model.Asset) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Asset, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Asset, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Asset]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Asset {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Asset](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
