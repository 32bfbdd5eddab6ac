package packages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"basecamp/infras/otel"
	"basecamp/internal/domains/packages/model"
	"basecamp/internal/domains/packages/model/dto"
	"basecamp/internal/domains/packages/service"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/validator"
	"basecamp/transport/http/response"
)

type Handler struct {
	service service.Package
	otel    otel.Otel
}

func New(service service.Package, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/packages", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCatalog)
		routerGroup.Get("/{slug}", handler.GetPackageBySlug)
	})

	router.Route("/dashboard/packages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePackage)
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{id}", handler.GetPackageByID)
		routerGroup.Patch("/{id}", handler.UpdatePackage)
		routerGroup.Delete("/{id}", handler.DeletePackage)
		routerGroup.Put("/{id}/document", handler.AttachDocument)
		routerGroup.Delete("/{id}/document", handler.DeleteDocument)
	})
}

// GetCatalog serves the public package catalog.
// @Summary Browse the package catalog
// @Description Retrieve a page of published packages with filtering and sorting.
// @Tags Package
// @Accept json
// @Produce json
// @Param pageNumber query int false "Page number, 1-based"
// @Param searchQuery query string false "Case-insensitive name search"
// @Param sortBy query string false "Sort order" Enums(title-asc, title-desc, created-asc, created-desc)
// @Param minPrice query number false "Minimum effective price"
// @Param maxPrice query number false "Maximum effective price"
// @Param duration query string false "Duration bucket" Enums(1-3, 4-7, 8-14, 15-21, 22-30, 30+)
// @Param difficulty query string false "Filter by difficulty"
// @Success 200 {object} dto.CatalogResponse "Catalog page"
// @Failure 500 {object} response.Error
// @Router /v1/packages [get]
func (handler *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCatalog")
	defer scope.End()

	query := dto.CatalogQuery{}
	query.FromRequest(r)

	catalog, err := handler.service.Catalog(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package catalog")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Catalog retrieved successfully")

	response.WithJSON(w, http.StatusOK, catalog)
}

// GetPackageBySlug retrieves a single package by its slug.
// @Summary Get a package by slug
// @Description Retrieve the full package detail for a public detail page.
// @Tags Package
// @Accept json
// @Produce json
// @Param slug path string true "Package slug"
// @Success 200 {object} dto.PackageResponse "Package details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{slug} [get]
func (handler *Handler) GetPackageBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageBySlug")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	pkg, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package by slug")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package retrieved successfully")

	response.WithJSON(w, http.StatusOK, pkg)
}

// CreatePackage handles the creation of a new package.
// @Summary Create a new package
// @Description Create a new travel package with the provided details.
// @Tags Package
// @Accept json
// @Produce json
// @Param request body dto.CreatePackageRequest true "Create Package Request"
// @Success 201 {object} response.Message "Package created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/packages [post]
// @Security BearerAuth
func (handler *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePackage")
	defer scope.End()

	req := dto.CreatePackageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Package created successfully")
}

// GetPackages retrieves all packages for the dashboard.
// @Summary Get all packages
// @Description Retrieve all packages with optional filtering and pagination.
// @Tags Package
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param name query string false "Filter by name"
// @Param difficulty query string false "Filter by difficulty"
// @Success 200 {object} dto.GetPackagesResponse "List of packages"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/packages [get]
// @Security BearerAuth
func (handler *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.TieBreak = model.TableName + "." + model.FieldID

	name := r.URL.Query().Get(model.FieldName)
	difficulty := r.URL.Query().Get(model.FieldDifficulty)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if difficulty != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDifficulty,
			Operator: gDto.FilterOperatorEq,
			Value:    difficulty,
			Table:    model.TableName,
		})
	}

	packages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Packages retrieved successfully")

	response.WithJSON(w, http.StatusOK, packages)
}

// GetPackageByID retrieves a package by its ID.
// @Summary Get a package by ID
// @Description Retrieve a package by its unique identifier.
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} dto.PackageResponse "Package details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/packages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPackageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	pkg, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Package retrieved successfully")

	response.WithJSON(w, http.StatusOK, pkg)
}

// UpdatePackage updates an existing package by its ID.
// @Summary Update a package by ID
// @Description Update the details of an existing package.
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body dto.UpdatePackageRequest true "Update Package Request"
// @Success 200 {object} response.Message "Package updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/packages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePackageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package updated successfully")
}

// DeletePackage deletes a package by its ID.
// @Summary Delete a package by ID
// @Description Delete a package along with its stored document.
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Message "Package deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/packages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePackage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete package")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Package deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Package deleted successfully")
}

// AttachDocument uploads a PDF itinerary document for a package.
// @Summary Attach a document to a package
// @Description Upload a PDF and associate it with the package, replacing any previous document.
// @Tags Package
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Package ID"
// @Param file formData file true "PDF document"
// @Success 200 {object} dto.AttachDocumentResponse "Document attached successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/packages/{id}/document [put]
// @Security BearerAuth
func (handler *Handler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AttachDocument")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	res, err := handler.service.AttachDocument(ctx, id, file, fileHeader)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to attach document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document attached successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteDocument removes the document attached to a package.
// @Summary Delete a package's document
// @Description Delete the stored PDF and clear the package's document reference.
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Message "Document deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/packages/{id}/document [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDocument")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteDocument(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete document")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Document deleted successfully")
}
