package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"basecamp/config"
	"basecamp/infras/otel"
	"basecamp/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// S3 wraps the object store. Objects are addressed by their key (the
// public id handed back to callers); the public URL is derived from it.
type S3 interface {
	UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader) (url, key string, err error)
	UploadBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url, key string, err error)
	DeleteObject(ctx context.Context, key string) error
	ObjectKeyFromURL(url string) (key string)
	PublicURL(key string) string
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader) (url, key string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	buf := bytes.NewBuffer(nil)

	if _, err = buf.ReadFrom(file); err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := fileHeader.Header.Get(constant.RequestHeaderContentType)

	return svc.upload(ctx, directory, fileHeader.Filename, contentType, buf)
}

func (svc *s3Impl) UploadBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url, key string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadBytes")
	defer scope.End()
	defer scope.TraceIfError(err)

	buf := bytes.NewBuffer(fileData)

	return svc.upload(ctx, directory, fileName, contentType, buf)
}

// DeleteObject removes the object with the given key. Deleting a key that
// does not exist succeeds; the store treats it as a no-op.
func (svc *s3Impl) DeleteObject(ctx context.Context, key string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteObject")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := svc.Config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    bucketName,
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) ObjectKeyFromURL(url string) (key string) {
	bucketName := svc.Config.External.S3.BucketName

	publicPrefix := svc.Config.External.S3.PublicDomain + "/"
	if rest, found := strings.CutPrefix(url, publicPrefix); found {
		return rest
	}

	apiPrefix := fmt.Sprintf("%s/%s/", svc.Config.External.S3.APIEndpoint, bucketName)
	if rest, found := strings.CutPrefix(url, apiPrefix); found {
		return rest
	}

	return constant.Empty
}

func (svc *s3Impl) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", svc.Config.External.S3.PublicDomain, key)
}

func (svc *s3Impl) upload(ctx context.Context, directory, fileName, contentType string, buf *bytes.Buffer) (url, key string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := svc.Config.External.S3.BucketName

	// A random prefix keeps same-named uploads from clobbering each other.
	objectKey := path.Join(directory, uuid.NewString()+path.Ext(fileName))

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucketName,
	})

	fileReader := bytes.NewReader(buf.Bytes())

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.PublicURL(objectKey), objectKey, nil
}

func New(config *config.Config, otel otel.Otel) S3 {
	endpoint := config.External.S3.APIEndpoint
	accessKeyID := config.External.S3.AccessKeyID
	secretAccessKey := config.External.S3.SecretAccessKey

	staticProvider := credentials.NewStaticCredentialsProvider(
		accessKeyID,
		secretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)

	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
