package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"basecamp/config"
	"basecamp/infras/otel/mocks"
	s3Mocks "basecamp/infras/s3/mocks"
	"basecamp/internal/domains/media/model/dto"
	"basecamp/internal/domains/media/service"
	"basecamp/shared/constant"
	"basecamp/shared/failure"
)

func newTestService(t *testing.T) (service.Media, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	svc := service.New(&config.Config{}, mocks.NewOtel(), mockS3)

	return svc, mockS3
}

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header: textproto.MIMEHeader{
			constant.RequestHeaderContentType: []string{contentType},
		},
	}
}

func TestMediaService_Upload(t *testing.T) {
	tests := []struct {
		name      string
		header    *multipart.FileHeader
		setupMock func(s3 *s3Mocks.MockS3)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "image within the size limit",
			header: fileHeader("trek.jpg", "image/jpeg", 5*1024*1024),
			setupMock: func(s3 *s3Mocks.MockS3) {
				s3.EXPECT().
					UploadFile(gomock.Any(), "gallery", gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/gallery/trek.jpg", "gallery/trek.jpg", nil)
			},
			wantErr: false,
		},
		{
			name:      "image above 10 MB rejected",
			header:    fileHeader("huge.png", "image/png", 11*1024*1024),
			setupMock: func(s3 *s3Mocks.MockS3) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:   "pdf within the size limit",
			header: fileHeader("itinerary.pdf", constant.ContentTypePDF, 20*1024*1024),
			setupMock: func(s3 *s3Mocks.MockS3) {
				s3.EXPECT().
					UploadFile(gomock.Any(), "gallery", gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/gallery/itinerary.pdf", "gallery/itinerary.pdf", nil)
			},
			wantErr: false,
		},
		{
			name:      "pdf above 50 MB rejected",
			header:    fileHeader("huge.pdf", constant.ContentTypePDF, 51*1024*1024),
			setupMock: func(s3 *s3Mocks.MockS3) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:      "unsupported content type rejected",
			header:    fileHeader("notes.txt", "text/plain", 1024),
			setupMock: func(s3 *s3Mocks.MockS3) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:   "upstream upload error",
			header: fileHeader("trek.jpg", "image/jpeg", 1024),
			setupMock: func(s3 *s3Mocks.MockS3) {
				s3.EXPECT().
					UploadFile(gomock.Any(), "gallery", gomock.Any(), gomock.Any()).
					Return("", "", errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockS3 := newTestService(t)

			tt.setupMock(mockS3)

			res, err := svc.Upload(context.Background(), "gallery", dto.UploadRequest{File: tt.header})

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.URL)
				assert.NotEmpty(t, res.PublicID)
			}
		})
	}
}

func TestMediaService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "gallery/trek.jpg").
			Return(nil)

		err := svc.Delete(context.Background(), dto.DeleteRequest{PublicID: "gallery/trek.jpg"})

		assert.NoError(t, err)
	})

	t.Run("upstream delete error", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "gallery/trek.jpg").
			Return(errors.New("access denied"))

		err := svc.Delete(context.Background(), dto.DeleteRequest{PublicID: "gallery/trek.jpg"})

		assert.Error(t, err)
	})
}

func TestMediaService_Attach(t *testing.T) {
	header := fileHeader("itinerary.pdf", constant.ContentTypePDF, 1024)

	t.Run("upload then persist", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "documents", gomock.Any(), header).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		var persistedURL, persistedKey string
		persist := func(_ context.Context, url, key string) error {
			persistedURL = url
			persistedKey = key

			return nil
		}

		url, key, err := svc.Attach(context.Background(), "documents", nil, header, persist)

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/documents/new.pdf", url)
		assert.Equal(t, "documents/new.pdf", key)
		assert.Equal(t, url, persistedURL)
		assert.Equal(t, key, persistedKey)
	})

	t.Run("persist failure compensates with an object delete", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "documents", gomock.Any(), header).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "documents/new.pdf").
			Return(nil)

		persist := func(context.Context, string, string) error {
			return errors.New("row update failed")
		}

		url, key, err := svc.Attach(context.Background(), "documents", nil, header, persist)

		assert.Error(t, err)
		assert.Equal(t, "row update failed", err.Error())
		assert.Empty(t, url)
		assert.Empty(t, key)
	})

	t.Run("compensating delete failure does not mask the persist error", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "documents", gomock.Any(), header).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "documents/new.pdf").
			Return(errors.New("access denied"))

		persist := func(context.Context, string, string) error {
			return errors.New("row update failed")
		}

		_, _, err := svc.Attach(context.Background(), "documents", nil, header, persist)

		assert.Error(t, err)
		assert.Equal(t, "row update failed", err.Error())
	})

	t.Run("invalid file never reaches the object store", func(t *testing.T) {
		svc, _ := newTestService(t)

		persist := func(context.Context, string, string) error {
			t.Fatal("persist must not run for an invalid file")

			return nil
		}

		_, _, err := svc.Attach(context.Background(), "documents", nil, fileHeader("notes.txt", "text/plain", 1024), persist)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestMediaService_Replace(t *testing.T) {
	header := fileHeader("itinerary.pdf", constant.ContentTypePDF, 1024)

	t.Run("old object deleted only after the row persists", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		persisted := false

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "documents", gomock.Any(), header).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "documents/old.pdf").
			DoAndReturn(func(context.Context, string) error {
				assert.True(t, persisted)

				return nil
			})

		persist := func(context.Context, string, string) error {
			persisted = true

			return nil
		}

		url, key, err := svc.Replace(context.Background(), "documents", nil, header, "documents/old.pdf", persist)

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/documents/new.pdf", url)
		assert.Equal(t, "documents/new.pdf", key)
	})

	t.Run("persist failure keeps the old object", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "documents", gomock.Any(), header).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		// Only the just-uploaded object is compensating-deleted.
		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "documents/new.pdf").
			Return(nil)

		persist := func(context.Context, string, string) error {
			return errors.New("row update failed")
		}

		_, _, err := svc.Replace(context.Background(), "documents", nil, header, "documents/old.pdf", persist)

		assert.Error(t, err)
	})

	t.Run("failed old-object delete is tolerated", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "documents", gomock.Any(), header).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "documents/old.pdf").
			Return(errors.New("access denied"))

		persist := func(context.Context, string, string) error {
			return nil
		}

		url, key, err := svc.Replace(context.Background(), "documents", nil, header, "documents/old.pdf", persist)

		assert.NoError(t, err)
		assert.Equal(t, "documents/new.pdf", key)
		assert.NotEmpty(t, url)
	})

	t.Run("empty old key skips the trailing delete", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), "documents", gomock.Any(), header).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		persist := func(context.Context, string, string) error {
			return nil
		}

		_, _, err := svc.Replace(context.Background(), "documents", nil, header, "", persist)

		assert.NoError(t, err)
	})
}

func TestMediaService_Remove(t *testing.T) {
	t.Run("objects first, row second", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "gallery/a.jpg").
			Return(nil)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "gallery/b.jpg").
			Return(nil)

		rowDeleted := false
		deleteRow := func(context.Context) error {
			rowDeleted = true

			return nil
		}

		err := svc.Remove(context.Background(), []string{"gallery/a.jpg", "gallery/b.jpg"}, deleteRow)

		assert.NoError(t, err)
		assert.True(t, rowDeleted)
	})

	t.Run("failed object delete does not block the row delete", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "gallery/a.jpg").
			Return(errors.New("access denied"))

		rowDeleted := false
		deleteRow := func(context.Context) error {
			rowDeleted = true

			return nil
		}

		err := svc.Remove(context.Background(), []string{"gallery/a.jpg"}, deleteRow)

		assert.NoError(t, err)
		assert.True(t, rowDeleted)
	})

	t.Run("empty keys are skipped", func(t *testing.T) {
		svc, _ := newTestService(t)

		deleteRow := func(context.Context) error {
			return nil
		}

		err := svc.Remove(context.Background(), []string{"", ""}, deleteRow)

		assert.NoError(t, err)
	})

	t.Run("row delete error is returned", func(t *testing.T) {
		svc, mockS3 := newTestService(t)

		mockS3.EXPECT().
			DeleteObject(gomock.Any(), "gallery/a.jpg").
			Return(nil)

		deleteRow := func(context.Context) error {
			return errors.New("database error")
		}

		err := svc.Remove(context.Background(), []string{"gallery/a.jpg"}, deleteRow)

		assert.Error(t, err)
	})
}
