package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gellies-store/internal/auth"
	"gellies-store/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         *model.CredentialsRequest
		setupMocks  func(*MockUserRepository, *MockHasher)
		expectedErr error
		expectError bool
	}{
		{
			name: "Success",
			req:  &model.CredentialsRequest{Email: "a@x.com", Password: "pw"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "a@x.com").Return(nil, nil)
				h.On("Hash", "pw").Return("$2a$10$hash", nil)
				repo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "a@x.com" && u.Password == "$2a$10$hash" && u.Role == model.RoleUser
				})).Return(nil)
			},
		},
		{
			name:        "Missing email",
			req:         &model.CredentialsRequest{Password: "pw"},
			setupMocks:  func(*MockUserRepository, *MockHasher) {},
			expectedErr: model.ErrMissingCredentials,
			expectError: true,
		},
		{
			name:        "Missing password",
			req:         &model.CredentialsRequest{Email: "a@x.com"},
			setupMocks:  func(*MockUserRepository, *MockHasher) {},
			expectedErr: model.ErrMissingCredentials,
			expectError: true,
		},
		{
			name: "Email already registered",
			req:  &model.CredentialsRequest{Email: "a@x.com", Password: "pw"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "a@x.com").Return(&model.User{ID: "U1", Email: "a@x.com"}, nil)
			},
			expectedErr: model.ErrUserExists,
			expectError: true,
		},
		{
			name: "Concurrent registration rejected by unique index",
			req:  &model.CredentialsRequest{Email: "a@x.com", Password: "pw"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "a@x.com").Return(nil, nil)
				h.On("Hash", "pw").Return("$2a$10$hash", nil)
				repo.On("Create", ctx, mock.Anything).Return(model.ErrUserExists)
			},
			expectedErr: model.ErrUserExists,
			expectError: true,
		},
		{
			name: "Store failure",
			req:  &model.CredentialsRequest{Email: "a@x.com", Password: "pw"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "a@x.com").Return(nil, errors.New("connection refused"))
			},
			expectError: true,
		},
		{
			name: "Hash failure",
			req:  &model.CredentialsRequest{Email: "a@x.com", Password: "pw"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "a@x.com").Return(nil, nil)
				h.On("Hash", "pw").Return("", errors.New("bad cost"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			hasher := new(MockHasher)
			tt.setupMocks(repo, hasher)

			svc := NewAuthService(repo, hasher, zerolog.Nop())
			err := svc.Register(ctx, tt.req)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				require.NoError(t, err)
			}

			repo.AssertExpectations(t)
			hasher.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	stored := &model.User{ID: "U1", Email: "a@x.com", Password: "$2a$10$hash", Role: model.RoleUser}

	tests := []struct {
		name        string
		req         *model.CredentialsRequest
		setupMocks  func(*MockUserRepository, *MockHasher)
		expectedErr error
		expectError bool
	}{
		{
			name: "Success",
			req:  &model.CredentialsRequest{Email: "a@x.com", Password: "pw"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "a@x.com").Return(stored, nil)
				h.On("Compare", "$2a$10$hash", "pw").Return(nil)
			},
		},
		{
			name:        "Missing credentials",
			req:         &model.CredentialsRequest{},
			setupMocks:  func(*MockUserRepository, *MockHasher) {},
			expectedErr: model.ErrMissingCredentials,
			expectError: true,
		},
		{
			name: "Unknown email",
			req:  &model.CredentialsRequest{Email: "b@x.com", Password: "pw"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "b@x.com").Return(nil, nil)
			},
			expectedErr: model.ErrInvalidCredentials,
			expectError: true,
		},
		{
			name: "Wrong password",
			req:  &model.CredentialsRequest{Email: "a@x.com", Password: "nope"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "a@x.com").Return(stored, nil)
				h.On("Compare", "$2a$10$hash", "nope").Return(auth.ErrMismatch)
			},
			expectedErr: model.ErrInvalidCredentials,
			expectError: true,
		},
		{
			name: "Store failure",
			req:  &model.CredentialsRequest{Email: "a@x.com", Password: "pw"},
			setupMocks: func(repo *MockUserRepository, h *MockHasher) {
				repo.On("GetByEmail", ctx, "a@x.com").Return(nil, errors.New("timeout"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			hasher := new(MockHasher)
			tt.setupMocks(repo, hasher)

			svc := NewAuthService(repo, hasher, zerolog.Nop())
			user, err := svc.Login(ctx, tt.req)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, user)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "a@x.com", user.Email)
			}

			repo.AssertExpectations(t)
			hasher.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginErrorsAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	hasher := new(MockHasher)

	repo.On("GetByEmail", ctx, "ghost@x.com").Return(nil, nil)
	repo.On("GetByEmail", ctx, "a@x.com").Return(&model.User{Email: "a@x.com", Password: "h"}, nil)
	hasher.On("Compare", "h", "wrong").Return(auth.ErrMismatch)

	svc := NewAuthService(repo, hasher, zerolog.Nop())

	_, unknownErr := svc.Login(ctx, &model.CredentialsRequest{Email: "ghost@x.com", Password: "wrong"})
	_, wrongErr := svc.Login(ctx, &model.CredentialsRequest{Email: "a@x.com", Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_RegisterWithBcrypt(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)

	var saved *model.User
	repo.On("GetByEmail", ctx, "a@x.com").Return(nil, nil).Once()
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.User)
	}).Return(nil)

	hasher := auth.NewBcryptHasher(4)
	svc := NewAuthService(repo, hasher, zerolog.Nop())

	require.NoError(t, svc.Register(ctx, &model.CredentialsRequest{Email: "a@x.com", Password: "secret"}))
	require.NotNil(t, saved)
	assert.NotEqual(t, "secret", saved.Password)

	repo.On("GetByEmail", ctx, "a@x.com").Return(saved, nil)

	user, err := svc.Login(ctx, &model.CredentialsRequest{Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, user.ID)
}

func TestAuthService_RegisterLongPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	password := strings.Repeat("p", 73)

	var saved *model.User
	repo.On("GetByEmail", ctx, "long@x.com").Return(nil, nil).Once()
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.User)
	}).Return(nil)

	svc := NewAuthService(repo, auth.NewBcryptHasher(4), zerolog.Nop())

	require.NoError(t, svc.Register(ctx, &model.CredentialsRequest{Email: "long@x.com", Password: password}))
	require.NotNil(t, saved)

	repo.On("GetByEmail", ctx, "long@x.com").Return(saved, nil)

	_, err := svc.Login(ctx, &model.CredentialsRequest{Email: "long@x.com", Password: password})
	assert.NoError(t, err)
}
