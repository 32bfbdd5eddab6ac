package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"basecamp/config"
	"basecamp/infras/otel/mocks"
	userMocks "basecamp/internal/domains/users/mocks"
	"basecamp/internal/domains/users/model"
	"basecamp/internal/domains/users/model/dto"
	"basecamp/internal/domains/users/service"
	cacheMocks "basecamp/shared/cache/mocks"
	"basecamp/shared/constant"
	"basecamp/shared/failure"
	"basecamp/shared/password"
)

func newTestService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func TestUserService_Create(t *testing.T) {
	req := dto.CreateUserRequest{
		Email:    "editor@example.com",
		Password: "strong-password",
		Role:     constant.RoleEditor,
	}

	t.Run("hashes the password before insert", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, "editor@example.com", user.Email)
				assert.NotEqual(t, "strong-password", user.Password)
				assert.NoError(t, password.Verify("strong-password", user.Password))

				return nil
			})

		err := svc.Create(testContext(), req)

		assert.NoError(t, err)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "email already registered")
	})

	t.Run("exist check error", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, errors.New("database error"))

		err := svc.Create(testContext(), req)

		assert.Error(t, err)
	})
}

func TestUserService_Update(t *testing.T) {
	role := constant.RoleAdmin

	t.Run("empty request is rejected before any lookup", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		err := svc.Update(testContext(), dto.UpdateUserRequest{}, "user-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(testContext(), dto.UpdateUserRequest{Role: &role}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("role change lands in the update", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, &role, fields[model.FieldRole])
				assert.Equal(t, "admin-id", fields[constant.FieldModifiedBy])

				return nil
			})

		err := svc.Update(testContext(), dto.UpdateUserRequest{Role: &role}, "user-id")

		assert.NoError(t, err)
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, mockCache := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "user-id", Email: "editor@example.com", Role: constant.RoleEditor, Active: true}, nil)

		res, err := svc.Get(testContext(), "user-id")

		assert.NoError(t, err)
		assert.Equal(t, "user-id", res.ID)
		assert.Equal(t, "editor@example.com", res.Email)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newTestService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(testContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(testContext(), "user-id")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(testContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
