package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"basecamp/infras/otel"
	"basecamp/internal/domains/media/model/dto"
	"basecamp/internal/domains/media/service"
	"basecamp/shared/constant"
	"basecamp/shared/validator"
	"basecamp/transport/http/response"
)

const uploadDirectory = "uploads"

type Handler struct {
	service service.Media
	otel    otel.Otel
}

func New(service service.Media, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard/media", func(routerGroup chi.Router) {
		routerGroup.Post("/upload", handler.Upload)
		routerGroup.Post("/delete", handler.Delete)
	})
}

// Upload stores a file in the object store and returns its public URL.
// @Summary Upload a media file
// @Description Upload an image or PDF to the object store and return its URL and public ID.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} dto.UploadResponse "File uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/media/upload [post]
// @Security BearerAuth
func (handler *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Upload")
	defer scope.End()

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

	req := dto.UploadRequest{
		File:       fileHeader,
		FileHandle: file,
	}

	res, err := handler.service.Upload(ctx, uploadDirectory, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("File uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// Delete removes a stored object by its public ID.
// @Summary Delete a media file
// @Description Delete an object from the store by its public ID. Deleting an unknown ID succeeds.
// @Tags Media
// @Accept json
// @Produce json
// @Param request body dto.DeleteRequest true "Delete Request"
// @Success 200 {object} response.Message "File deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/media/delete [post]
// @Security BearerAuth
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	req := dto.DeleteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete file")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("File deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "File deleted successfully")
}
