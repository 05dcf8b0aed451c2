package impl

import (
	"context"
	"testing"
	"time"

	"inventory/internal/domain/entity"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/repository"
	"inventory/internal/domain/service"
	mockRepo "inventory/internal/mocks/repository"
	mockSvc "inventory/internal/mocks/service"
	"inventory/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	svc := NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:      svc,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Username: "alice", Password: "secret123"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("secret123").Return("$2a$10$hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = 1
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(1), output.User.ID)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, "$2a$10$hashed", output.User.PasswordHash)
}

func TestUserService_Register_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.RegisterInput
	}{
		{"nil input", nil},
		{"empty username", &usecase.RegisterInput{Password: "secret123"}},
		{"empty password", &usecase.RegisterInput{Username: "alice"}},
		{"both empty", &usecase.RegisterInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestUserService(t)

			_, err := fx.service.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrMissingField)
		})
	}
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{ID: 1, Username: "alice"}, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestUserService_Register_ConcurrentDuplicate(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("secret123").Return("$2a$10$hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUsernameTaken.WrapMessage("username already exists"))

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestUserService_Register_PasswordTooLong(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("", domainerrors.ErrPasswordTooLong)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordTooLong)
}

func TestUserService_Register_LookupFailure(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, dbErr)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, dbErr)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	expiresAt := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	user := &entity.User{ID: 7, Username: "alice", PasswordHash: "$2a$10$hashed"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.hasher.EXPECT().Verify("secret123", "$2a$10$hashed").Return(true, nil)
	fx.tokenService.EXPECT().Issue(int64(7)).Return("signed.jwt.token", expiresAt, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Equal(t, expiresAt, output.ExpiresAt)
	assert.Equal(t, "alice", output.User.Username)
}

func TestUserService_Login_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fx userServiceFixtures)
	}{
		{
			name: "unknown user",
			setup: func(fx userServiceFixtures) {
				fx.userRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(nil, repository.ErrUserNotFound)
			},
		},
		{
			name: "wrong password",
			setup: func(fx userServiceFixtures) {
				fx.userRepo.EXPECT().FindByUsername(mock.Anything, "alice").
					Return(&entity.User{ID: 7, Username: "alice", PasswordHash: "$2a$10$hashed"}, nil)
				fx.hasher.EXPECT().Verify("secret123", "$2a$10$hashed").Return(false, nil)
			},
		},
		{
			name: "malformed stored digest",
			setup: func(fx userServiceFixtures) {
				fx.userRepo.EXPECT().FindByUsername(mock.Anything, "alice").
					Return(&entity.User{ID: 7, Username: "alice", PasswordHash: "plaintext"}, nil)
				fx.hasher.EXPECT().Verify("secret123", "plaintext").Return(false, service.ErrInvalidDigestFormat)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestUserService(t)
			tt.setup(fx)

			output, err := fx.service.Login(context.Background(), &usecase.LoginInput{Username: "alice", Password: "secret123"})

			assert.Nil(t, output)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestUserService_Login_MissingFields(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Username: "alice"})
	assert.ErrorIs(t, err, domainerrors.ErrMissingField)
}

func TestUserService_Login_TokenIssueFailure(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").
		Return(&entity.User{ID: 7, Username: "alice", PasswordHash: "h"}, nil)
	fx.hasher.EXPECT().Verify("secret123", "h").Return(true, nil)
	fx.tokenService.EXPECT().Issue(int64(7)).Return("", time.Time{}, service.ErrSigningKeyMissing)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, service.ErrSigningKeyMissing)
}
