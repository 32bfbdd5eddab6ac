//go:build wireinject
// +build wireinject

package di

import (
	"basecamp/config"
	"basecamp/infras/jwt"
	"basecamp/infras/kafka"
	"basecamp/infras/otel"
	"basecamp/infras/postgres"
	"basecamp/infras/redis"
	"basecamp/infras/s3"
	"basecamp/permissions"
	"basecamp/shared/cache"
	"basecamp/transport/http"
	"basecamp/transport/http/middleware"
	"basecamp/transport/http/router"

	"github.com/google/wire"

	assetRepository "basecamp/internal/domains/assets/repository"
	assetService "basecamp/internal/domains/assets/service"
	authService "basecamp/internal/domains/auth/service"
	inquiryRepository "basecamp/internal/domains/inquiries/repository"
	inquiryService "basecamp/internal/domains/inquiries/service"
	mediaService "basecamp/internal/domains/media/service"
	packageRepository "basecamp/internal/domains/packages/repository"
	packageService "basecamp/internal/domains/packages/service"
	pageRepository "basecamp/internal/domains/pages/repository"
	pageService "basecamp/internal/domains/pages/service"
	testimonialRepository "basecamp/internal/domains/testimonials/repository"
	testimonialService "basecamp/internal/domains/testimonials/service"
	userRepository "basecamp/internal/domains/users/repository"
	userService "basecamp/internal/domains/users/service"

	assetHandler "basecamp/internal/handlers/assets"
	authHandler "basecamp/internal/handlers/auth"
	inquiryHandler "basecamp/internal/handlers/inquiries"
	mediaHandler "basecamp/internal/handlers/media"
	packageHandler "basecamp/internal/handlers/packages"
	pageHandler "basecamp/internal/handlers/pages"
	testimonialHandler "basecamp/internal/handlers/testimonials"
	userHandler "basecamp/internal/handlers/users"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var mediaDomain = wire.NewSet(
	mediaService.New,
)

var packageDomain = wire.NewSet(
	packageRepository.New,
	packageService.New,
)

var assetDomain = wire.NewSet(
	assetRepository.New,
	assetService.New,
)

var testimonialDomain = wire.NewSet(
	testimonialRepository.New,
	testimonialService.New,
)

var pageDomain = wire.NewSet(
	pageRepository.New,
	pageService.New,
)

var inquiryDomain = wire.NewSet(
	inquiryRepository.New,
	inquiryService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	mediaDomain,
	packageDomain,
	assetDomain,
	testimonialDomain,
	pageDomain,
	inquiryDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	packageHandler.New,
	assetHandler.New,
	testimonialHandler.New,
	pageHandler.New,
	inquiryHandler.New,
	mediaHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
