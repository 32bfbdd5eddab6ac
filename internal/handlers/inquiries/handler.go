package inquiries

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"basecamp/infras/otel"
	"basecamp/internal/domains/inquiries/model"
	"basecamp/internal/domains/inquiries/model/dto"
	"basecamp/internal/domains/inquiries/service"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/validator"
	"basecamp/transport/http/response"
)

type Handler struct {
	service service.Inquiry
	otel    otel.Otel
}

func New(service service.Inquiry, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inquiries", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInquiry)
	})

	router.Route("/dashboard/inquiries", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInquiries)
		routerGroup.Get("/{id}", handler.GetInquiryByID)
		routerGroup.Patch("/{id}/status", handler.UpdateInquiryStatus)
		routerGroup.Delete("/{id}", handler.DeleteInquiry)
	})
}

// CreateInquiry handles a contact request from the public site.
// @Summary Submit an inquiry
// @Description Submit a contact request, optionally tied to a package.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param request body dto.CreateInquiryRequest true "Create Inquiry Request"
// @Success 201 {object} dto.InquiryResponse "Inquiry submitted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries [post]
func (handler *Handler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInquiry")
	defer scope.End()

	req := dto.CreateInquiryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	inquiry, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inquiry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiry submitted successfully")

	response.WithJSON(w, http.StatusCreated, inquiry)
}

// GetInquiries retrieves all inquiries for the dashboard.
// @Summary Get all inquiries
// @Description Retrieve all inquiries with optional filtering and pagination.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by status" Enums(new, contacted, closed)
// @Success 200 {object} dto.GetInquiriesResponse "List of inquiries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/inquiries [get]
// @Security BearerAuth
func (handler *Handler) GetInquiries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInquiries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.TieBreak = model.TableName + "." + model.FieldID

	status := r.URL.Query().Get(constant.RequestParamStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	inquiries, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inquiries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiries retrieved successfully")

	response.WithJSON(w, http.StatusOK, inquiries)
}

// GetInquiryByID retrieves an inquiry by its ID.
// @Summary Get an inquiry by ID
// @Description Retrieve an inquiry by its unique identifier.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} dto.InquiryResponse "Inquiry details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/inquiries/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInquiryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInquiryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	inquiry, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inquiry by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiry retrieved successfully")

	response.WithJSON(w, http.StatusOK, inquiry)
}

// UpdateInquiryStatus updates the workflow status of an inquiry.
// @Summary Update inquiry status
// @Description Move an inquiry through its workflow states.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body dto.UpdateInquiryStatusRequest true "Update Inquiry Status Request"
// @Success 200 {object} response.Message "Inquiry status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/inquiries/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInquiryStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateInquiryStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update inquiry status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry status updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inquiry status updated successfully")
}

// DeleteInquiry deletes an inquiry by its ID.
// @Summary Delete an inquiry by ID
// @Description Delete an inquiry using its unique identifier.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} response.Message "Inquiry deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/inquiries/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInquiry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete inquiry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Inquiry deleted successfully")
}
