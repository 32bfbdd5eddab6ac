package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"basecamp/config"
	"basecamp/infras/otel"
	"basecamp/internal/domains/pages/model"
	"basecamp/internal/domains/pages/model/dto"
	"basecamp/internal/domains/pages/repository"
	"basecamp/shared"
	"basecamp/shared/cache"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/failure"
)

const (
	cacheGetPage     = "pages:get"
	cacheGetPageSlug = "pages:get_slug"
	cacheGetAllPages = "pages:get_all"
)

type Page interface {
	GetBySlug(ctx context.Context, slug string) (dto.PageResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPagesResponse, error)
	Get(ctx context.Context, id string) (dto.PageResponse, error)
	Create(ctx context.Context, req dto.CreatePageRequest) (dto.PageResponse, error)
	Update(ctx context.Context, req dto.UpdatePageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Page
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Page, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Page {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// GetBySlug serves a published page for the public site. Unpublished
// pages and unknown slugs both come back as not found.
func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPageSlug, slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for page by slug")

		return res, nil
	}

	page, err := s.repo.Get(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get page by slug")

		return res, fmt.Errorf("failed to get page by slug: %w", err)
	}

	if page.ID == constant.Empty || !page.Published {
		return res, failure.NotFound("page not found")
	}

	res.FromModel(page)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save page to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPages, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pages")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pages")

		return res, err
	}

	pages, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pages")

		return res, err
	}

	res.FromModels(pages, params.Page, params.Limit, total)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for page")

		return res, nil
	}

	page, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get page")

		return res, fmt.Errorf("failed to get page: %w", err)
	}

	if page.ID == constant.Empty {
		return res, failure.NotFound("page not found")
	}

	res.FromModel(page)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save page to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePageRequest) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	page := req.ToModel(user)

	taken, err := s.repo.Exist(ctx, shared.FilterByID(page.Slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check slug availability")

		return res, fmt.Errorf("failed to check slug availability: %w", err)
	}

	if taken {
		return res, failure.Conflict(fmt.Sprintf("a page with slug %q already exists", page.Slug))
	}

	if err = s.repo.Insert(ctx, page); err != nil {
		return res, err
	}

	s.invalidateCaches(ctx, page)

	res.FromModel(page)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get page for update")

		return fmt.Errorf("failed to get page: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("page not found")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := shared.TransformFields(req, user)

	if req.Title != "" {
		slug := shared.Slugify(req.Title)

		if slug != current.Slug {
			taken, err := s.repo.Exist(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
			if err != nil {
				log.Error().Err(err).Msg("failed to check slug availability")

				return fmt.Errorf("failed to check slug availability: %w", err)
			}

			if taken {
				return failure.Conflict(fmt.Sprintf("a page with slug %q already exists", slug))
			}
		}

		updatedFields[model.FieldSlug] = slug
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update page")

		return fmt.Errorf("failed to update page: %w", err)
	}

	s.invalidateCaches(ctx, current)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	page, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get page for deletion")

		return fmt.Errorf("failed to get page: %w", err)
	}

	if page.ID == constant.Empty {
		return failure.NotFound("page not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete page")

		return fmt.Errorf("failed to delete page: %w", err)
	}

	s.invalidateCaches(ctx, page)

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, page model.Page) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPage, page.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete page cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPageSlug, page.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete page slug cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPages)
	}()
}
