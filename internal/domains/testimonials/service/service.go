package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog/log"

	"basecamp/config"
	"basecamp/infras/otel"
	mediaService "basecamp/internal/domains/media/service"
	"basecamp/internal/domains/testimonials/model"
	"basecamp/internal/domains/testimonials/model/dto"
	"basecamp/internal/domains/testimonials/repository"
	"basecamp/shared"
	"basecamp/shared/cache"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/failure"
)

const (
	cacheGetTestimonial     = "testimonials:get"
	cacheGetAllTestimonials = "testimonials:get_all"
	cachePublicTestimonials = "testimonials:public"

	avatarDirectory = "avatars"
)

type Testimonial interface {
	GetPublic(ctx context.Context) (dto.PublicTestimonialsResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTestimonialsResponse, error)
	Get(ctx context.Context, id string) (dto.TestimonialResponse, error)
	Create(ctx context.Context, req dto.CreateTestimonialRequest) (dto.TestimonialResponse, error)
	Update(ctx context.Context, req dto.UpdateTestimonialRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadAvatar(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (dto.UploadAvatarResponse, error)
}

type serviceImpl struct {
	repo  repository.Testimonial
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	media mediaService.Media
}

func New(repo repository.Testimonial, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, media mediaService.Media) Testimonial {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		media: media,
	}
}

func (s *serviceImpl) GetPublic(ctx context.Context) (res dto.PublicTestimonialsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublic")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cachePublicTestimonials, "all")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for public testimonials")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "active",
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:   model.TableName + "." + model.FieldSortIndex + " ASC, " + model.TableName + "." + model.FieldCreatedAt,
		SortDir:  gDto.SortDirDesc,
		TieBreak: model.TableName + "." + model.FieldID,
	}

	testimonials, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get public testimonials")

		return res, err
	}

	res.FromModels(testimonials)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save public testimonials to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTestimonialsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTestimonials, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for testimonials")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count testimonials")

		return res, err
	}

	testimonials, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get testimonials")

		return res, err
	}

	res.FromModels(testimonials, params.Page, params.Limit, total)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save testimonials to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TestimonialResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTestimonial, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for testimonial")

		return res, nil
	}

	testimonial, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get testimonial")

		return res, fmt.Errorf("failed to get testimonial: %w", err)
	}

	if testimonial.ID == constant.Empty {
		return res, failure.NotFound("testimonial not found")
	}

	res.FromModel(testimonial)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save testimonial to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTestimonialRequest) (res dto.TestimonialResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	testimonial := req.ToModel(user)

	if err = s.repo.Insert(ctx, testimonial); err != nil {
		return res, err
	}

	s.invalidateCaches(ctx, testimonial.ID)

	res.FromModel(testimonial)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTestimonialRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get testimonial for update")

		return fmt.Errorf("failed to get testimonial: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("testimonial not found")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update testimonial")

		return fmt.Errorf("failed to update testimonial: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	testimonial, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get testimonial for deletion")

		return fmt.Errorf("failed to get testimonial: %w", err)
	}

	if testimonial.ID == constant.Empty {
		return failure.NotFound("testimonial not found")
	}

	err = s.media.Remove(ctx, []string{testimonial.AvatarKey}, func(ctx context.Context) error {
		return s.repo.Delete(ctx, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete testimonial")

		return fmt.Errorf("failed to delete testimonial: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) UploadAvatar(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (res dto.UploadAvatarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadAvatar")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	testimonial, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get testimonial for avatar upload")

		return res, fmt.Errorf("failed to get testimonial: %w", err)
	}

	if testimonial.ID == constant.Empty {
		return res, failure.NotFound("testimonial not found")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	persist := func(ctx context.Context, url, key string) error {
		fields := map[string]any{
			model.FieldAvatarURL: url,
			model.FieldAvatarKey: key,
		}
		fields[constant.FieldModifiedBy] = user

		return s.repo.Update(ctx, fields, filter)
	}

	var url, key string

	if testimonial.AvatarKey != constant.Empty {
		url, key, err = s.media.Replace(ctx, avatarDirectory, file, header, testimonial.AvatarKey, persist)
	} else {
		url, key, err = s.media.Attach(ctx, avatarDirectory, file, header, persist)
	}

	if err != nil {
		return res, err
	}

	s.invalidateCaches(ctx, id)

	res.URL = url
	res.PublicID = key

	return res, nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTestimonial, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete testimonial cache")
		}

		shared.InvalidateCaches(c, s.cache, cachePublicTestimonials)
		shared.InvalidateCaches(c, s.cache, cacheGetAllTestimonials)
	}()
}
