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
	"basecamp/internal/domains/packages/model"
	"basecamp/internal/domains/packages/model/dto"
	"basecamp/internal/domains/packages/repository"
	"basecamp/shared"
	"basecamp/shared/cache"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/failure"
)

const (
	cacheCatalogPackages = "packages:catalog"
	cacheGetPackage      = "packages:get"
	cacheGetPackageSlug  = "packages:get_slug"
	cacheGetAllPackages  = "packages:get_all"
	cacheCountPackages   = "packages:count"

	documentDirectory = "documents"
)

type Package interface {
	Catalog(ctx context.Context, query dto.CatalogQuery) (dto.CatalogResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	Get(ctx context.Context, id string) (dto.PackageResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.PackageResponse, error)
	Create(ctx context.Context, req dto.CreatePackageRequest) error
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	Delete(ctx context.Context, id string) error
	AttachDocument(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (dto.AttachDocumentResponse, error)
	DeleteDocument(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Package
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	media mediaService.Media
}

func New(repo repository.Package, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, media mediaService.Media) Package {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		media: media,
	}
}

// Catalog serves the public package listing: filter, then count, then page.
// TotalItems always reflects the filtered row count, and a page number past
// the end returns an empty page with intact metadata.
func (s *serviceImpl) Catalog(ctx context.Context, query dto.CatalogQuery) (res dto.CatalogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCatalogPackages, query, gDto.FilterGroup{})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package catalog")

		return res, nil
	}

	filter := query.ToFilterGroup()
	params := query.ToQueryParams()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count catalog packages")

		return res, err
	}

	packages, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get catalog packages")

		return res, err
	}

	res.FromModels(packages, params.Page, params.Limit, total)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package catalog to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackages, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, err
	}

	packages, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, err
	}

	res.FromModels(packages, params.Page, params.Limit, total)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPackage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package")

		return res, nil
	}

	pkg, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package not found")
	}

	res.FromModel(pkg)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPackageSlug, slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package by slug")

		return res, nil
	}

	pkg, err := s.repo.Get(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package by slug")

		return res, fmt.Errorf("failed to get package by slug: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package not found")
	}

	res.FromModel(pkg)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.DiscountedPrice != nil && (*req.DiscountedPrice <= 0 || *req.DiscountedPrice > req.Price) {
		return failure.BadRequestFromString("discounted_price must be positive and not exceed price")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	pkg := req.ToModel(user)

	taken, err := s.repo.Exist(ctx, shared.FilterByID(pkg.Slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check slug availability")

		return fmt.Errorf("failed to check slug availability: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("a package with slug %q already exists", pkg.Slug))
	}

	if err = s.repo.Insert(ctx, pkg); err != nil {
		return err
	}

	s.invalidateListCaches(ctx)

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for update")

		return fmt.Errorf("failed to get package: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("package not found")
	}

	// Reject a discount above the resulting base price, mixing updated
	// and current values as needed.
	price := current.Price
	if req.Price > 0 {
		price = req.Price
	}

	discounted := current.DiscountedPrice
	if req.DiscountedPrice != nil {
		discounted = req.DiscountedPrice
	}

	if discounted != nil && (*discounted <= 0 || *discounted > price) {
		return failure.BadRequestFromString("discounted_price must be positive and not exceed price")
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Name != "" {
		slug := shared.Slugify(req.Name)

		if slug != current.Slug {
			taken, err := s.repo.Exist(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
			if err != nil {
				log.Error().Err(err).Msg("failed to check slug availability")

				return fmt.Errorf("failed to check slug availability: %w", err)
			}

			if taken {
				return failure.Conflict(fmt.Sprintf("a package with slug %q already exists", slug))
			}
		}

		updatedFields[model.FieldSlug] = slug
	}

	if req.Duration != "" {
		updatedFields[model.FieldDurationDays] = model.ParseDurationDays(req.Duration)
	}

	if req.Itinerary != nil {
		steps := make(model.ItinerarySteps, len(req.Itinerary))
		for i, step := range req.Itinerary {
			steps[i] = model.ItineraryStep{Heading: step.Heading, Description: step.Description}
		}

		updatedFields["itinerary"] = steps
	}

	if req.FAQs != nil {
		entries := make(model.FAQEntries, len(req.FAQs))
		for i, entry := range req.FAQs {
			entries[i] = model.FAQEntry{Question: entry.Question, Answer: entry.Answer}
		}

		updatedFields["faqs"] = entries
	}

	if req.Highlights != nil {
		highlights := make(model.Highlights, len(req.Highlights))
		for i, highlight := range req.Highlights {
			highlights[i] = model.Highlight{Heading: highlight.Heading, Description: highlight.Description}
		}

		updatedFields["highlights"] = highlights
	}

	if req.BookingDates != nil {
		updatedFields["booking_dates"] = model.StringList(req.BookingDates)
	}

	if req.GalleryURLs != nil {
		updatedFields["gallery_urls"] = model.StringList(req.GalleryURLs)
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update package")

		return fmt.Errorf("failed to update package: %w", err)
	}

	s.invalidateRowCaches(ctx, current)

	return nil
}

// Delete removes the package's document from the object store first (a
// failure there is logged and does not block) and the row second.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	pkg, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for deletion")

		return fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return failure.NotFound("package not found")
	}

	keys := []string{pkg.DocumentKey}
	for _, url := range pkg.GalleryURLs {
		keys = append(keys, s.media.ObjectKey(url))
	}

	err = s.media.Remove(ctx, keys, func(ctx context.Context) error {
		return s.repo.Delete(ctx, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete package")

		return fmt.Errorf("failed to delete package: %w", err)
	}

	s.invalidateRowCaches(ctx, pkg)

	return nil
}

// AttachDocument uploads a PDF and points the row at it. A package that
// already owns a document goes through the replace sequence so the old
// object is only deleted once the row references the new one.
func (s *serviceImpl) AttachDocument(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (res dto.AttachDocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AttachDocument")
	defer scope.End()
	defer scope.TraceIfError(err)

	if header.Header.Get(constant.RequestHeaderContentType) != constant.ContentTypePDF {
		return res, failure.BadRequestFromString("package documents must be PDF files")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	pkg, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for document attach")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package not found")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	persist := func(ctx context.Context, url, key string) error {
		fields := map[string]any{
			"document_url":         url,
			model.FieldDocumentKey: key,
		}
		fields[constant.FieldModifiedBy] = user

		return s.repo.Update(ctx, fields, filter)
	}

	var url, key string

	if pkg.DocumentKey != constant.Empty {
		url, key, err = s.media.Replace(ctx, documentDirectory, file, header, pkg.DocumentKey, persist)
	} else {
		url, key, err = s.media.Attach(ctx, documentDirectory, file, header, persist)
	}

	if err != nil {
		return res, err
	}

	s.invalidateRowCaches(ctx, pkg)

	res.URL = url
	res.PublicID = key

	return res, nil
}

func (s *serviceImpl) DeleteDocument(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteDocument")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	pkg, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for document delete")

		return fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return failure.NotFound("package not found")
	}

	if pkg.DocumentKey == constant.Empty {
		return nil
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.media.Remove(ctx, []string{pkg.DocumentKey}, func(ctx context.Context) error {
		fields := map[string]any{
			"document_url":         constant.Empty,
			model.FieldDocumentKey: constant.Empty,
		}
		fields[constant.FieldModifiedBy] = user

		return s.repo.Update(ctx, fields, filter)
	})
	if err != nil {
		return fmt.Errorf("failed to delete package document: %w", err)
	}

	s.invalidateRowCaches(ctx, pkg)

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheCatalogPackages)
		shared.InvalidateCaches(c, s.cache, cacheGetAllPackages)
		shared.InvalidateCaches(c, s.cache, cacheCountPackages)
	}()
}

func (s *serviceImpl) invalidateRowCaches(ctx context.Context, pkg model.Package) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackage, pkg.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete package cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackageSlug, pkg.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete package slug cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheCatalogPackages)
		shared.InvalidateCaches(c, s.cache, cacheGetAllPackages)
		shared.InvalidateCaches(c, s.cache, cacheCountPackages)
	}()
}
