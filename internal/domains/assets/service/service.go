package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog/log"

	"basecamp/config"
	"basecamp/infras/otel"
	"basecamp/internal/domains/assets/model"
	"basecamp/internal/domains/assets/model/dto"
	"basecamp/internal/domains/assets/repository"
	mediaService "basecamp/internal/domains/media/service"
	"basecamp/shared"
	"basecamp/shared/cache"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/failure"
)

const (
	cacheGetAsset      = "assets:get"
	cacheGetAllAssets  = "assets:get_all"
	cacheSectionAssets = "assets:section"

	assetImageDirectory = "assets"
)

type Asset interface {
	GetBySection(ctx context.Context, section string) (dto.SectionAssetsResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAssetsResponse, error)
	Get(ctx context.Context, id string) (dto.AssetResponse, error)
	Create(ctx context.Context, req dto.CreateAssetRequest) (dto.AssetResponse, error)
	Update(ctx context.Context, req dto.UpdateAssetRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (dto.UploadAssetImageResponse, error)
}

type serviceImpl struct {
	repo  repository.Asset
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	media mediaService.Media
}

func New(repo repository.Asset, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, media mediaService.Media) Asset {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		media: media,
	}
}

// GetBySection returns the active assets of one site section in display
// order: sort_index ascending, newest first among equal indexes.
func (s *serviceImpl) GetBySection(ctx context.Context, section string) (res dto.SectionAssetsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySection")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !validSection(section) {
		return res, failure.BadRequestFromString("unknown asset section")
	}

	cacheKey := shared.BuildCacheKey(cacheSectionAssets, section)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for section assets")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSection,
				Operator: gDto.FilterOperatorEq,
				Value:    section,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "active",
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	// The composite sort key keeps sort_index ascending while breaking
	// ties by recency.
	params := gDto.QueryParams{
		SortBy:   model.TableName + "." + model.FieldSortIndex + " ASC, " + model.TableName + "." + model.FieldCreatedAt,
		SortDir:  gDto.SortDirDesc,
		TieBreak: model.TableName + "." + model.FieldID,
	}

	assets, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get section assets")

		return res, err
	}

	res.FromModels(section, assets)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save section assets to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAssetsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAssets, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for assets")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count assets")

		return res, err
	}

	assets, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get assets")

		return res, err
	}

	res.FromModels(assets, params.Page, params.Limit, total)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save assets to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AssetResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAsset, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for asset")

		return res, nil
	}

	asset, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get asset")

		return res, fmt.Errorf("failed to get asset: %w", err)
	}

	if asset.ID == constant.Empty {
		return res, failure.NotFound("asset not found")
	}

	res.FromModel(asset)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save asset to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAssetRequest) (res dto.AssetResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	asset := req.ToModel(user)

	if err = s.repo.Insert(ctx, asset); err != nil {
		return res, err
	}

	s.invalidateCaches(ctx, asset)

	res.FromModel(asset)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAssetRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get asset for update")

		return fmt.Errorf("failed to get asset: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("asset not found")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update asset")

		return fmt.Errorf("failed to update asset: %w", err)
	}

	s.invalidateCaches(ctx, current)

	return nil
}

// Delete removes the stored image first, then the row. A missing object
// key skips the store and just deletes the row.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	asset, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get asset for deletion")

		return fmt.Errorf("failed to get asset: %w", err)
	}

	if asset.ID == constant.Empty {
		return failure.NotFound("asset not found")
	}

	err = s.media.Remove(ctx, []string{asset.ObjectKey}, func(ctx context.Context) error {
		return s.repo.Delete(ctx, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete asset")

		return fmt.Errorf("failed to delete asset: %w", err)
	}

	s.invalidateCaches(ctx, asset)

	return nil
}

// UploadImage stores a new image for the asset. When the asset already
// holds an image the old object is deleted only after the row points at
// the new one.
func (s *serviceImpl) UploadImage(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (res dto.UploadAssetImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	asset, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get asset for image upload")

		return res, fmt.Errorf("failed to get asset: %w", err)
	}

	if asset.ID == constant.Empty {
		return res, failure.NotFound("asset not found")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	persist := func(ctx context.Context, url, key string) error {
		fields := map[string]any{
			model.FieldImageURL:  url,
			model.FieldObjectKey: key,
		}
		fields[constant.FieldModifiedBy] = user

		return s.repo.Update(ctx, fields, filter)
	}

	var url, key string

	if asset.ObjectKey != constant.Empty {
		url, key, err = s.media.Replace(ctx, assetImageDirectory, file, header, asset.ObjectKey, persist)
	} else {
		url, key, err = s.media.Attach(ctx, assetImageDirectory, file, header, persist)
	}

	if err != nil {
		return res, err
	}

	s.invalidateCaches(ctx, asset)

	res.URL = url
	res.PublicID = key

	return res, nil
}

func validSection(section string) bool {
	switch section {
	case model.SectionGallery, model.SectionBanner, model.SectionRecognition, model.SectionAbout:
		return true
	}

	return false
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, asset model.Asset) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAsset, asset.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete asset cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheSectionAssets, asset.Section)); err != nil {
			log.Error().Err(err).Msg("failed to delete section assets cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAssets)
	}()
}
