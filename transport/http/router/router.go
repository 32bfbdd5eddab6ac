package router

import (
	"basecamp/internal/handlers/assets"
	"basecamp/internal/handlers/auth"
	"basecamp/internal/handlers/inquiries"
	"basecamp/internal/handlers/media"
	"basecamp/internal/handlers/packages"
	"basecamp/internal/handlers/pages"
	"basecamp/internal/handlers/testimonials"
	"basecamp/internal/handlers/users"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Packages     packages.Handler
	Assets       assets.Handler
	Testimonials testimonials.Handler
	Pages        pages.Handler
	Inquiries    inquiries.Handler
	Media        media.Handler
	Users        users.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Packages.Router(routerGroup)
		r.DomainHandlers.Assets.Router(routerGroup)
		r.DomainHandlers.Testimonials.Router(routerGroup)
		r.DomainHandlers.Pages.Router(routerGroup)
		r.DomainHandlers.Inquiries.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
		r.DomainHandlers.Users.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
