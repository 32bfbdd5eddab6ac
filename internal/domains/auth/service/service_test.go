package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"basecamp/config"
	"basecamp/infras/jwt"
	jwtMocks "basecamp/infras/jwt/mocks"
	"basecamp/infras/otel/mocks"
	"basecamp/internal/domains/auth/model/dto"
	"basecamp/internal/domains/auth/service"
	userMocks "basecamp/internal/domains/users/mocks"
	userModel "basecamp/internal/domains/users/model"
	"basecamp/shared/failure"
	"basecamp/shared/password"
)

func newTestService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	return svc, mockRepo, mockJWT
}

func testUser(t *testing.T, plainPassword string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plainPassword)
	assert.NoError(t, err)

	return userModel.User{
		ID:       "user-id",
		Email:    "admin@example.com",
		Password: hashed,
		Role:     "admin",
		Active:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}

	t.Run("successful login updates last login", func(t *testing.T) {
		svc, mockRepo, mockJWT := newTestService(t)

		user := testUser(t, "correct-password")

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		mockJWT.EXPECT().
			GenerateTokenPair("user-id", "admin@example.com", "admin").
			Return(tokenPair, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@example.com",
			Password: "correct-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Equal(t, "refresh-token", res.RefreshToken)
		assert.Equal(t, int64(900), res.ExpiresIn)
	})

	t.Run("unknown email gets the generic message", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("wrong password gets the same generic message", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testUser(t, "correct-password"), nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@example.com",
			Password: "wrong-password",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("deactivated account is rejected", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		user := testUser(t, "correct-password")
		user.Active = false

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@example.com",
			Password: "correct-password",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("token generation error", func(t *testing.T) {
		svc, mockRepo, mockJWT := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testUser(t, "correct-password"), nil)

		mockJWT.EXPECT().
			GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("signing error"))

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@example.com",
			Password: "correct-password",
		})

		assert.Error(t, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		svc, _, mockJWT := newTestService(t)

		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
				ExpiresIn:    900,
			}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "valid-refresh-token",
		})

		assert.NoError(t, err)
		assert.Equal(t, "new-access-token", res.AccessToken)
		assert.Equal(t, "new-refresh-token", res.RefreshToken)
	})

	t.Run("invalid refresh token is unauthorized", func(t *testing.T) {
		svc, _, mockJWT := newTestService(t)

		mockJWT.EXPECT().
			RefreshTokens("garbage").
			Return(nil, errors.New("token is malformed"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "garbage",
		})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("successful change verifies the current password", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testUser(t, "old-password"), nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				hashed, ok := fields[userModel.FieldPassword].(string)
				assert.True(t, ok)
				assert.NoError(t, password.Verify("new-password-123", hashed))

				return nil
			})

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password-123",
		}, "user-id")

		assert.NoError(t, err)
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testUser(t, "old-password"), nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "not-the-password",
			NewPassword:     "new-password-123",
		}, "user-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, mockRepo, _ := newTestService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "old-password",
			NewPassword:     "new-password-123",
		}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
