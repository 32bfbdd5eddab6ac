package testimonials

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"basecamp/infras/otel"
	"basecamp/internal/domains/testimonials/model"
	"basecamp/internal/domains/testimonials/model/dto"
	"basecamp/internal/domains/testimonials/service"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/validator"
	"basecamp/transport/http/response"
)

type Handler struct {
	service service.Testimonial
	otel    otel.Otel
}

func New(service service.Testimonial, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/testimonials", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPublicTestimonials)
	})

	router.Route("/dashboard/testimonials", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTestimonial)
		routerGroup.Get("/", handler.GetTestimonials)
		routerGroup.Get("/{id}", handler.GetTestimonialByID)
		routerGroup.Patch("/{id}", handler.UpdateTestimonial)
		routerGroup.Delete("/{id}", handler.DeleteTestimonial)
		routerGroup.Put("/{id}/avatar", handler.UploadAvatar)
	})
}

// GetPublicTestimonials serves the active testimonials in display order.
// @Summary Get public testimonials
// @Description Retrieve all active testimonials for the public site.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Success 200 {object} dto.PublicTestimonialsResponse "Testimonials"
// @Failure 500 {object} response.Error
// @Router /v1/testimonials [get]
func (handler *Handler) GetPublicTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicTestimonials")
	defer scope.End()

	testimonials, err := handler.service.GetPublic(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get public testimonials")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Public testimonials retrieved successfully")

	response.WithJSON(w, http.StatusOK, testimonials)
}

// CreateTestimonial handles the creation of a new testimonial.
// @Summary Create a new testimonial
// @Description Create a new testimonial. The avatar is uploaded separately.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param request body dto.CreateTestimonialRequest true "Create Testimonial Request"
// @Success 201 {object} dto.TestimonialResponse "Testimonial created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/testimonials [post]
// @Security BearerAuth
func (handler *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTestimonial")
	defer scope.End()

	req := dto.CreateTestimonialRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	testimonial, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create testimonial")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Testimonial created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, testimonial)
}

// GetTestimonials retrieves all testimonials for the dashboard.
// @Summary Get all testimonials
// @Description Retrieve all testimonials with optional filtering and pagination.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param author query string false "Filter by author"
// @Param active query bool false "Filter by active state"
// @Success 200 {object} dto.GetTestimonialsResponse "List of testimonials"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/testimonials [get]
// @Security BearerAuth
func (handler *Handler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTestimonials")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.TieBreak = model.TableName + "." + model.FieldID

	author := r.URL.Query().Get(model.FieldAuthor)
	active := r.URL.Query().Get(constant.RequestParamActive)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if author != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAuthor,
			Operator: gDto.FilterOperatorLike,
			Value:    author,
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

	testimonials, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get testimonials")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Testimonials retrieved successfully")

	response.WithJSON(w, http.StatusOK, testimonials)
}

// GetTestimonialByID retrieves a testimonial by its ID.
// @Summary Get a testimonial by ID
// @Description Retrieve a testimonial by its unique identifier.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} dto.TestimonialResponse "Testimonial details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/testimonials/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTestimonialByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTestimonialByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	testimonial, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get testimonial by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Testimonial retrieved successfully")

	response.WithJSON(w, http.StatusOK, testimonial)
}

// UpdateTestimonial updates an existing testimonial by its ID.
// @Summary Update a testimonial by ID
// @Description Update the details of an existing testimonial.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Param request body dto.UpdateTestimonialRequest true "Update Testimonial Request"
// @Success 200 {object} response.Message "Testimonial updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/testimonials/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTestimonial")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTestimonialRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update testimonial")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Testimonial updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Testimonial updated successfully")
}

// DeleteTestimonial deletes a testimonial by its ID.
// @Summary Delete a testimonial by ID
// @Description Delete a testimonial along with its stored avatar.
// @Tags Testimonial
// @Accept json
// @Produce json
// @Param id path string true "Testimonial ID"
// @Success 200 {object} response.Message "Testimonial deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/testimonials/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTestimonial")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete testimonial")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Testimonial deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Testimonial deleted successfully")
}

// UploadAvatar uploads an avatar image for a testimonial.
// @Summary Upload a testimonial avatar
// @Description Upload an avatar image and associate it with the testimonial, replacing any previous one.
// @Tags Testimonial
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Testimonial ID"
// @Param file formData file true "Avatar image"
// @Success 200 {object} dto.UploadAvatarResponse "Avatar uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/testimonials/{id}/avatar [put]
// @Security BearerAuth
func (handler *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadAvatar")
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

	res, err := handler.service.UploadAvatar(ctx, id, file, fileHeader)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload avatar")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Avatar uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
