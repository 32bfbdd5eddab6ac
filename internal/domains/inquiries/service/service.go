package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"basecamp/config"
	"basecamp/infras/kafka"
	"basecamp/infras/otel"
	"basecamp/internal/domains/inquiries/model"
	"basecamp/internal/domains/inquiries/model/dto"
	"basecamp/internal/domains/inquiries/repository"
	"basecamp/shared"
	"basecamp/shared/cache"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/failure"
)

const (
	cacheGetInquiry      = "inquiries:get"
	cacheGetAllInquiries = "inquiries:get_all"
)

type Inquiry interface {
	Create(ctx context.Context, req dto.CreateInquiryRequest) (dto.InquiryResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInquiriesResponse, error)
	Get(ctx context.Context, id string) (dto.InquiryResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateInquiryStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Inquiry
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	producer kafka.Producer
}

func New(repo repository.Inquiry, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, producer kafka.Producer) Inquiry {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		producer: producer,
	}
}

// Create stores a public contact request and publishes an event for
// downstream notification. The row is the source of truth; a publish
// failure is logged and never fails the request.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInquiryRequest) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	inquiry := req.ToModel()

	if err = s.repo.Insert(ctx, inquiry); err != nil {
		return res, err
	}

	if s.cfg.External.Kafka.Enable {
		go func() {
			c := context.WithoutCancel(ctx)

			event := dto.InquiryReceivedEvent{
				InquiryID:  inquiry.ID,
				Name:       inquiry.Name,
				Email:      inquiry.Email,
				PackageID:  inquiry.PackageID,
				TravelDate: inquiry.TravelDate,
				CreatedAt:  inquiry.CreatedAt.Format(constant.DateFormat),
			}

			message := kafka.Message{Key: inquiry.ID, Value: event}

			if err := s.producer.SendMessages(c, s.cfg.External.Kafka.InquiryTopic, message); err != nil {
				log.Error().Err(err).Str("inquiryID", inquiry.ID).Msg("failed to publish inquiry event")
			}
		}()
	}

	s.invalidateCaches(ctx, inquiry.ID)

	res.FromModel(inquiry)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInquiriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInquiries, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiries")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inquiries")

		return res, err
	}

	inquiries, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiries")

		return res, err
	}

	res.FromModels(inquiries, params.Page, params.Limit, total)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetInquiry, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiry")

		return res, nil
	}

	inquiry, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiry")

		return res, fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return res, failure.NotFound("inquiry not found")
	}

	res.FromModel(inquiry)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiry to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateInquiryStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	inquiry, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiry for status update")

		return fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return failure.NotFound("inquiry not found")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update inquiry status")

		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	inquiry, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiry for deletion")

		return fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return failure.NotFound("inquiry not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete inquiry")

		return fmt.Errorf("failed to delete inquiry: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetInquiry, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete inquiry cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllInquiries)
	}()
}
