package pages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"basecamp/infras/otel"
	"basecamp/internal/domains/pages/model"
	"basecamp/internal/domains/pages/model/dto"
	"basecamp/internal/domains/pages/service"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/validator"
	"basecamp/transport/http/response"
)

type Handler struct {
	service service.Page
	otel    otel.Otel
}

func New(service service.Page, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pages", func(routerGroup chi.Router) {
		routerGroup.Get("/{slug}", handler.GetPageBySlug)
	})

	router.Route("/dashboard/pages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePage)
		routerGroup.Get("/", handler.GetPages)
		routerGroup.Get("/{id}", handler.GetPageByID)
		routerGroup.Patch("/{id}", handler.UpdatePage)
		routerGroup.Delete("/{id}", handler.DeletePage)
	})
}

// GetPageBySlug serves a published page by its slug.
// @Summary Get a page by slug
// @Description Retrieve a published static page for the public site.
// @Tags Page
// @Accept json
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} dto.PageResponse "Page content"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pages/{slug} [get]
func (handler *Handler) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPageBySlug")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	page, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get page by slug")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Page retrieved successfully")

	response.WithJSON(w, http.StatusOK, page)
}

// CreatePage handles the creation of a new page.
// @Summary Create a new page
// @Description Create a new static page. The slug is derived from the title.
// @Tags Page
// @Accept json
// @Produce json
// @Param request body dto.CreatePageRequest true "Create Page Request"
// @Success 201 {object} dto.PageResponse "Page created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/pages [post]
// @Security BearerAuth
func (handler *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePage")
	defer scope.End()

	req := dto.CreatePageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	page, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create page")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Page created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, page)
}

// GetPages retrieves all pages for the dashboard.
// @Summary Get all pages
// @Description Retrieve all pages with optional filtering and pagination.
// @Tags Page
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param title query string false "Filter by title"
// @Success 200 {object} dto.GetPagesResponse "List of pages"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/pages [get]
// @Security BearerAuth
func (handler *Handler) GetPages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.TieBreak = model.TableName + "." + model.FieldID

	title := r.URL.Query().Get(model.FieldTitle)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if title != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	pages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pages retrieved successfully")

	response.WithJSON(w, http.StatusOK, pages)
}

// GetPageByID retrieves a page by its ID.
// @Summary Get a page by ID
// @Description Retrieve a page by its unique identifier.
// @Tags Page
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} dto.PageResponse "Page details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/pages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	page, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get page by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Page retrieved successfully")

	response.WithJSON(w, http.StatusOK, page)
}

// UpdatePage updates an existing page by its ID.
// @Summary Update a page by ID
// @Description Update the details of an existing page. A title change re-derives the slug.
// @Tags Page
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param request body dto.UpdatePageRequest true "Update Page Request"
// @Success 200 {object} response.Message "Page updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/pages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update page")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Page updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Page updated successfully")
}

// DeletePage deletes a page by its ID.
// @Summary Delete a page by ID
// @Description Delete a page using its unique identifier.
// @Tags Page
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Message "Page deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/pages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete page")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Page deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Page deleted successfully")
}
