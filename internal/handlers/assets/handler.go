package assets

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"basecamp/infras/otel"
	"basecamp/internal/domains/assets/model"
	"basecamp/internal/domains/assets/model/dto"
	"basecamp/internal/domains/assets/service"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/validator"
	"basecamp/transport/http/response"
)

type Handler struct {
	service service.Asset
	otel    otel.Otel
}

func New(service service.Asset, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/assets", func(routerGroup chi.Router) {
		routerGroup.Get("/sections/{section}", handler.GetSectionAssets)
	})

	router.Route("/dashboard/assets", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAsset)
		routerGroup.Get("/", handler.GetAssets)
		routerGroup.Get("/{id}", handler.GetAssetByID)
		routerGroup.Patch("/{id}", handler.UpdateAsset)
		routerGroup.Delete("/{id}", handler.DeleteAsset)
		routerGroup.Put("/{id}/image", handler.UploadImage)
	})
}

// GetSectionAssets serves the active assets of one site section.
// @Summary Get assets by section
// @Description Retrieve the active assets of a site section in display order.
// @Tags Asset
// @Accept json
// @Produce json
// @Param section path string true "Site section" Enums(gallery, banner, recognition, about)
// @Success 200 {object} dto.SectionAssetsResponse "Section assets"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/assets/sections/{section} [get]
func (handler *Handler) GetSectionAssets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSectionAssets")
	defer scope.End()

	section := chi.URLParam(r, constant.RequestParamSection)

	assets, err := handler.service.GetBySection(ctx, section)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get section assets")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Section assets retrieved successfully")

	response.WithJSON(w, http.StatusOK, assets)
}

// CreateAsset handles the creation of a new site asset.
// @Summary Create a new asset
// @Description Create a new site asset. The image is uploaded separately.
// @Tags Asset
// @Accept json
// @Produce json
// @Param request body dto.CreateAssetRequest true "Create Asset Request"
// @Success 201 {object} dto.AssetResponse "Asset created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/assets [post]
// @Security BearerAuth
func (handler *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAsset")
	defer scope.End()

	req := dto.CreateAssetRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	asset, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create asset")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Asset created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, asset)
}

// GetAssets retrieves all assets for the dashboard.
// @Summary Get all assets
// @Description Retrieve all assets with optional filtering and pagination.
// @Tags Asset
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param section query string false "Filter by section"
// @Param active query bool false "Filter by active state"
// @Success 200 {object} dto.GetAssetsResponse "List of assets"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/assets [get]
// @Security BearerAuth
func (handler *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAssets")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.TieBreak = model.TableName + "." + model.FieldID

	section := r.URL.Query().Get(constant.RequestParamSection)
	active := r.URL.Query().Get(constant.RequestParamActive)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if section != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSection,
			Operator: gDto.FilterOperatorEq,
			Value:    section,
			Table:    model.TableName,
		})
	}

	if active != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "active",
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    active == "true",
			Table:    model.TableName,
		})
	}

	assets, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get assets")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Assets retrieved successfully")

	response.WithJSON(w, http.StatusOK, assets)
}

// GetAssetByID retrieves an asset by its ID.
// @Summary Get an asset by ID
// @Description Retrieve an asset by its unique identifier.
// @Tags Asset
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse "Asset details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/assets/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAssetByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAssetByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	asset, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get asset by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Asset retrieved successfully")

	response.WithJSON(w, http.StatusOK, asset)
}

// UpdateAsset updates an existing asset by its ID.
// @Summary Update an asset by ID
// @Description Update the details of an existing asset, including its active state.
// @Tags Asset
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param request body dto.UpdateAssetRequest true "Update Asset Request"
// @Success 200 {object} response.Message "Asset updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/assets/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAsset")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAssetRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update asset")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Asset updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Asset updated successfully")
}

// DeleteAsset deletes an asset by its ID.
// @Summary Delete an asset by ID
// @Description Delete an asset along with its stored image.
// @Tags Asset
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} response.Message "Asset deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/assets/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAsset")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete asset")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Asset deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Asset deleted successfully")
}

// UploadImage uploads an image for an asset.
// @Summary Upload an asset image
// @Description Upload an image and associate it with the asset, replacing any previous image.
// @Tags Asset
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Asset ID"
// @Param file formData file true "Image file"
// @Success 200 {object} dto.UploadAssetImageResponse "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/assets/{id}/image [put]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
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

	res, err := handler.service.UploadImage(ctx, id, file, fileHeader)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload asset image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Asset image uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
