package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog/log"

	"basecamp/config"
	"basecamp/infras/otel"
	"basecamp/infras/s3"
	"basecamp/internal/domains/media/model/dto"
	"basecamp/shared/constant"
	"basecamp/shared/failure"
)

// PersistFunc writes the uploaded object's reference into a database row.
type PersistFunc func(ctx context.Context, url, key string) error

// Media is the object-store side of every media-bearing operation. Upload
// and Delete back the proxy endpoints; Attach, Replace and Remove are the
// dual-write sequences the owning domains run. None of the sequences is
// atomic across the store and the database: an orphaned remote object is
// the one inconsistency the protocol tolerates, a row pointing at a
// missing object the one it is ordered to avoid.
type Media interface {
	Upload(ctx context.Context, directory string, req dto.UploadRequest) (dto.UploadResponse, error)
	Delete(ctx context.Context, req dto.DeleteRequest) error
	Attach(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader, persist PersistFunc) (url, key string, err error)
	Replace(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader, oldKey string, persist PersistFunc) (url, key string, err error)
	Remove(ctx context.Context, keys []string, deleteRow func(ctx context.Context) error) error
	ObjectKey(url string) string
}

type serviceImpl struct {
	cfg  *config.Config
	otel otel.Otel
	s3   s3.S3
}

func New(cfg *config.Config, otel otel.Otel, s3 s3.S3) Media {
	return &serviceImpl{
		cfg:  cfg,
		otel: otel,
		s3:   s3,
	}
}

// validateFile rejects unsupported types and oversized files before any
// network call is made: images up to 10 MB, PDF documents up to 50 MB.
func validateFile(header *multipart.FileHeader) error {
	contentType := header.Header.Get(constant.RequestHeaderContentType)

	switch {
	case strings.HasPrefix(contentType, constant.ContentTypeImagePrefix):
		if header.Size > constant.MaxImageSizeBytes {
			return failure.BadRequestFromString("image exceeds the maximum size of 10 MB")
		}
	case contentType == constant.ContentTypePDF:
		if header.Size > constant.MaxDocumentSizeBytes {
			return failure.BadRequestFromString("document exceeds the maximum size of 50 MB")
		}
	default:
		return failure.BadRequestFromString(fmt.Sprintf("unsupported file type %q: only images and PDF documents are accepted", contentType))
	}

	return nil
}

func (s *serviceImpl) Upload(ctx context.Context, directory string, req dto.UploadRequest) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateFile(req.File); err != nil {
		return res, err
	}

	url, key, err := s.s3.UploadFile(ctx, directory, req.FileHandle, req.File)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to object store")

		return res, fmt.Errorf("failed to upload file: %w", err)
	}

	res.URL = url
	res.PublicID = key

	return res, nil
}

// Delete removes an object by its public id. Deleting an id that no longer
// exists is not an error.
func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.s3.DeleteObject(ctx, req.PublicID); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// Attach uploads the file and then persists its reference. When persisting
// fails, the just-created object is deleted again so no remote object ends
// up unreferenced; the compensating delete is best-effort and its outcome
// is never part of the returned error.
func (s *serviceImpl) Attach(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader, persist PersistFunc) (url, key string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Attach")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateFile(header); err != nil {
		return constant.Empty, constant.Empty, err
	}

	url, key, err = s.s3.UploadFile(ctx, directory, file, header)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to object store")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload file: %w", err)
	}

	if err = persist(ctx, url, key); err != nil {
		if deleteErr := s.s3.DeleteObject(context.WithoutCancel(ctx), key); deleteErr != nil {
			log.Error().Err(deleteErr).Str("key", key).Msg("compensating delete failed, object orphaned")
		}

		return constant.Empty, constant.Empty, err
	}

	return url, key, nil
}

// Replace uploads the new object first and deletes the old one only after
// the row points at the new object, so there is no window in which the row
// references a deleted object. A failed old-object delete is logged and
// tolerated; the row is already correct and the leak does not corrupt.
func (s *serviceImpl) Replace(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader, oldKey string, persist PersistFunc) (url, key string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Replace")
	defer scope.End()
	defer scope.TraceIfError(err)

	url, key, err = s.Attach(ctx, directory, file, header, persist)
	if err != nil {
		return constant.Empty, constant.Empty, err
	}

	if oldKey != constant.Empty {
		if deleteErr := s.s3.DeleteObject(context.WithoutCancel(ctx), oldKey); deleteErr != nil {
			log.Warn().Err(deleteErr).Str("key", oldKey).Msg("failed to delete replaced object, leaking it")
		}
	}

	return url, key, nil
}

// ObjectKey resolves a stored public URL back to its object key. Rows keep
// URLs for some collections, so deletion paths need the reverse mapping.
func (s *serviceImpl) ObjectKey(url string) string {
	return s.s3.ObjectKeyFromURL(url)
}

// Remove deletes the remote objects first and the row second. If the row
// delete then fails the state is "row present, objects gone", which a
// retry of the whole operation heals; the reverse order could strand
// objects with no row left to find them by.
func (s *serviceImpl) Remove(ctx context.Context, keys []string, deleteRow func(ctx context.Context) error) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	for _, key := range keys {
		if key == constant.Empty {
			continue
		}

		if deleteErr := s.s3.DeleteObject(ctx, key); deleteErr != nil {
			log.Warn().Err(deleteErr).Str("key", key).Msg("failed to delete object during removal, continuing")
		}
	}

	return deleteRow(ctx)
}
