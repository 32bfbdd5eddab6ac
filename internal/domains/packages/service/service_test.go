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
	mediaMocks "basecamp/internal/domains/media/mocks"
	mediaService "basecamp/internal/domains/media/service"
	packageMocks "basecamp/internal/domains/packages/mocks"
	"basecamp/internal/domains/packages/model"
	"basecamp/internal/domains/packages/model/dto"
	"basecamp/internal/domains/packages/service"
	cacheMocks "basecamp/shared/cache/mocks"
	"basecamp/shared/constant"
	gDto "basecamp/shared/dto"
	"basecamp/shared/failure"
	gModel "basecamp/shared/model"
	"basecamp/shared/timezone"
)

func newTestService(t *testing.T) (service.Package, *packageMocks.MockPackage, *cacheMocks.MockRedisCache, *mediaMocks.MockMedia) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := packageMocks.NewMockPackage(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMedia := mediaMocks.NewMockMedia(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes and invalidations run on detached goroutines.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel, mockMedia)

	return svc, mockRepo, mockCache, mockMedia
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func pdfHeader() *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "itinerary.pdf",
		Size:     1024,
		Header: textproto.MIMEHeader{
			constant.RequestHeaderContentType: []string{constant.ContentTypePDF},
		},
	}
}

func testPackage() model.Package {
	return model.Package{
		ID:    "pkg-id",
		Name:  "Everest Base Camp Trek",
		Slug:  "everest-base-camp-trek",
		Price: 4500,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}
}

func TestPackageService_Catalog(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantItems int
	}{
		{
			name: "cache hit",
			setupMock: func(repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, filtered count and page",
			setupMock: func(repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(12, nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Package{testPackage()}, nil)
			},
			wantErr:   false,
			wantItems: 12,
		},
		{
			name: "count error",
			setupMock: func(repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "page past the end returns empty page with intact metadata",
			setupMock: func(repo *packageMocks.MockPackage, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(12, nil)

				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Package{}, nil)
			},
			wantErr:   false,
			wantItems: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache, _ := newTestService(t)

			tt.setupMock(mockRepo, mockCache)

			query := dto.CatalogQuery{PageNumber: 1, MaxPrice: constant.CatalogMaxPrice}
			result, err := svc.Catalog(testContext(), query)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantItems, result.Pagination.TotalItems)
			}
		})
	}
}

func TestPackageService_Create(t *testing.T) {
	discountTooHigh := 5000.0
	discountNegative := -1.0
	discountValid := 3999.0

	tests := []struct {
		name      string
		req       dto.CreatePackageRequest
		setupMock func(repo *packageMocks.MockPackage)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreatePackageRequest{
				Name:            "Everest Base Camp Trek",
				Price:           4500,
				DiscountedPrice: &discountValid,
			},
			setupMock: func(repo *packageMocks.MockPackage) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "discount above price rejected",
			req: dto.CreatePackageRequest{
				Name:            "Everest Base Camp Trek",
				Price:           4500,
				DiscountedPrice: &discountTooHigh,
			},
			setupMock: func(repo *packageMocks.MockPackage) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "non-positive discount rejected",
			req: dto.CreatePackageRequest{
				Name:            "Everest Base Camp Trek",
				Price:           4500,
				DiscountedPrice: &discountNegative,
			},
			setupMock: func(repo *packageMocks.MockPackage) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "slug conflict",
			req: dto.CreatePackageRequest{
				Name:  "Everest Base Camp Trek",
				Price: 4500,
			},
			setupMock: func(repo *packageMocks.MockPackage) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req: dto.CreatePackageRequest{
				Name:  "Everest Base Camp Trek",
				Price: 4500,
			},
			setupMock: func(repo *packageMocks.MockPackage) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, _ := newTestService(t)

			tt.setupMock(mockRepo)

			err := svc.Create(testContext(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPackageService_Update(t *testing.T) {
	discountTooHigh := 9999.0

	t.Run("package not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		err := svc.Update(testContext(), dto.UpdatePackageRequest{Description: "x"}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("discount checked against the current price", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		req := dto.UpdatePackageRequest{DiscountedPrice: &discountTooHigh}
		err := svc.Update(testContext(), req, "pkg-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("rename recomputes the slug", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "annapurna-circuit", fields[model.FieldSlug])

				return nil
			})

		err := svc.Update(testContext(), dto.UpdatePackageRequest{Name: "Annapurna Circuit"}, "pkg-id")

		assert.NoError(t, err)
	})

	t.Run("rename to a taken slug conflicts", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Update(testContext(), dto.UpdatePackageRequest{Name: "Annapurna Circuit"}, "pkg-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("duration change reparses the day count", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				days, ok := fields[model.FieldDurationDays].(*int)
				assert.True(t, ok)
				assert.NotNil(t, days)
				assert.Equal(t, 7, *days)

				return nil
			})

		err := svc.Update(testContext(), dto.UpdatePackageRequest{Duration: "7 Days"}, "pkg-id")

		assert.NoError(t, err)
	})
}

func TestPackageService_Delete(t *testing.T) {
	t.Run("package not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		err := svc.Delete(testContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("object keys go through the removal sequence", func(t *testing.T) {
		svc, mockRepo, _, mockMedia := newTestService(t)

		pkg := testPackage()
		pkg.DocumentKey = "documents/abc.pdf"
		pkg.GalleryURLs = model.StringList{"https://cdn.example.com/gallery/a.jpg"}

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkg, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockMedia.EXPECT().
			ObjectKey("https://cdn.example.com/gallery/a.jpg").
			Return("gallery/a.jpg")

		mockMedia.EXPECT().
			Remove(gomock.Any(), []string{"documents/abc.pdf", "gallery/a.jpg"}, gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ []string, deleteRow func(context.Context) error) error {
				return deleteRow(ctx)
			})

		err := svc.Delete(testContext(), "pkg-id")

		assert.NoError(t, err)
	})
}

func TestPackageService_AttachDocument(t *testing.T) {
	t.Run("rejects non-pdf uploads", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		header := &multipart.FileHeader{
			Filename: "photo.jpg",
			Header: textproto.MIMEHeader{
				constant.RequestHeaderContentType: []string{"image/jpeg"},
			},
		}

		_, err := svc.AttachDocument(testContext(), "pkg-id", nil, header)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("first document goes through attach", func(t *testing.T) {
		svc, mockRepo, _, mockMedia := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		mockMedia.EXPECT().
			Attach(gomock.Any(), "documents", gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		res, err := svc.AttachDocument(testContext(), "pkg-id", nil, pdfHeader())

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/documents/new.pdf", res.URL)
		assert.Equal(t, "documents/new.pdf", res.PublicID)
	})

	t.Run("existing document goes through replace", func(t *testing.T) {
		svc, mockRepo, _, mockMedia := newTestService(t)

		pkg := testPackage()
		pkg.DocumentKey = "documents/old.pdf"

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkg, nil)

		mockMedia.EXPECT().
			Replace(gomock.Any(), "documents", gomock.Any(), gomock.Any(), "documents/old.pdf", gomock.Any()).
			Return("https://cdn.example.com/documents/new.pdf", "documents/new.pdf", nil)

		res, err := svc.AttachDocument(testContext(), "pkg-id", nil, pdfHeader())

		assert.NoError(t, err)
		assert.Equal(t, "documents/new.pdf", res.PublicID)
	})

	t.Run("persist runs the row update", func(t *testing.T) {
		svc, mockRepo, _, mockMedia := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "https://cdn.example.com/documents/new.pdf", fields["document_url"])
				assert.Equal(t, "documents/new.pdf", fields[model.FieldDocumentKey])
				assert.Equal(t, "test-user-id", fields[constant.FieldModifiedBy])

				return nil
			})

		mockMedia.EXPECT().
			Attach(gomock.Any(), "documents", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ multipart.File, _ *multipart.FileHeader, persist mediaService.PersistFunc) (string, string, error) {
				url := "https://cdn.example.com/documents/new.pdf"
				key := "documents/new.pdf"

				if err := persist(ctx, url, key); err != nil {
					return "", "", err
				}

				return url, key, nil
			})

		_, err := svc.AttachDocument(testContext(), "pkg-id", nil, pdfHeader())

		assert.NoError(t, err)
	})
}

func TestPackageService_DeleteDocument(t *testing.T) {
	t.Run("no document is a no-op", func(t *testing.T) {
		svc, mockRepo, _, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		err := svc.DeleteDocument(testContext(), "pkg-id")

		assert.NoError(t, err)
	})

	t.Run("document removal clears the row reference", func(t *testing.T) {
		svc, mockRepo, _, mockMedia := newTestService(t)

		pkg := testPackage()
		pkg.DocumentKey = "documents/old.pdf"

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkg, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.Empty, fields["document_url"])
				assert.Equal(t, constant.Empty, fields[model.FieldDocumentKey])

				return nil
			})

		mockMedia.EXPECT().
			Remove(gomock.Any(), []string{"documents/old.pdf"}, gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ []string, deleteRow func(context.Context) error) error {
				return deleteRow(ctx)
			})

		err := svc.DeleteDocument(testContext(), "pkg-id")

		assert.NoError(t, err)
	})
}

func TestPackageService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		svc, _, mockCache, _ := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Get(testContext(), "pkg-id")

		assert.NoError(t, err)
	})

	t.Run("cache miss, found in db", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		res, err := svc.Get(testContext(), "pkg-id")

		assert.NoError(t, err)
		assert.Equal(t, "pkg-id", res.ID)
		assert.Equal(t, "everest-base-camp-trek", res.Slug)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		_, err := svc.Get(testContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPackageService_GetBySlug(t *testing.T) {
	t.Run("cache miss, found in db", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testPackage(), nil)

		res, err := svc.GetBySlug(testContext(), "everest-base-camp-trek")

		assert.NoError(t, err)
		assert.Equal(t, "pkg-id", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Package{}, nil)

		_, err := svc.GetBySlug(testContext(), "missing-slug")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
