package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"fitcloset/internal/auth"
	apperrors "fitcloset/internal/errors"
	"fitcloset/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, patch model.UserPatch) (*model.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		fullName      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedEmail string
	}{
		{
			name:     "successful registration",
			email:    "Test@Example.com ",
			fullName: "Test User",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedEmail: "test@example.com",
		},
		{
			name:     "email already registered",
			email:    "existing@example.com",
			fullName: "Existing User",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrEmailRegistered,
		},
		{
			name:      "invalid email",
			email:     "not-an-email",
			fullName:  "Test User",
			password:  "password123",
			setupMock: func(m *MockUserRepository) {},
		},
		{
			name:      "password too short",
			email:     "test@example.com",
			fullName:  "Test User",
			password:  "short",
			setupMock: func(m *MockUserRepository) {},
		},
		{
			name:      "password exceeds bcrypt input limit",
			email:     "test@example.com",
			fullName:  "Test User",
			password:  strings.Repeat("a", 73),
			setupMock: func(m *MockUserRepository) {},
		},
		{
			name:      "full name too short",
			email:     "test@example.com",
			fullName:  "x",
			password:  "password123",
			setupMock: func(m *MockUserRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService)

			user, accessToken, refreshToken, err := service.Register(context.Background(), tt.email, tt.fullName, tt.password)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			case tt.expectedEmail == "":
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Nil(t, user)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.expectedEmail, user.Email)
				assert.Equal(t, tt.fullName, user.FullName)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           1,
					Email:        "test@example.com",
					PasswordHash: hash,
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           1,
					Email:        "test@example.com",
					PasswordHash: hash,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "malformed email",
			email:         "not-an-email",
			password:      "password123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(new(MockUserRepository), jwtService)

	refreshToken, err := jwtService.GenerateRefreshToken(1, "test@example.com")
	assert.NoError(t, err)
	accessToken, err := jwtService.GenerateAccessToken(1, "test@example.com")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		expectedError error
	}{
		{name: "valid refresh token", token: refreshToken},
		{name: "access token rejected", token: accessToken, expectedError: ErrInvalidRefreshToken},
		{name: "garbage token", token: "not-a-jwt", expectedError: ErrInvalidRefreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newAccess, err := service.Refresh(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, newAccess)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, newAccess)

				claims, err := jwtService.Verify(newAccess, auth.KindAccess)
				assert.NoError(t, err)
				assert.Equal(t, uint(1), claims.UserID)
			}
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Email: "test@example.com"}, nil)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))

	user, err := service.CurrentUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)

	user, err = service.CurrentUser(context.Background(), 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	hash, err := auth.HashPassword("old-password")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		oldPassword   string
		newPassword   string
		setupMock     func(*MockUserRepository)
		expectedError error
		wantValidErr  bool
	}{
		{
			name:        "successful change",
			oldPassword: "old-password",
			newPassword: "new-password-123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, PasswordHash: hash}, nil)
				m.On("Update", mock.Anything, uint(1), mock.MatchedBy(func(patch model.UserPatch) bool {
					return patch.PasswordHash != nil && auth.CheckPassword(*patch.PasswordHash, "new-password-123")
				})).Return(&model.User{ID: 1}, nil)
			},
		},
		{
			name:        "wrong old password",
			oldPassword: "not-the-old-password",
			newPassword: "new-password-123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, PasswordHash: hash}, nil)
			},
			expectedError: ErrWrongOldPassword,
		},
		{
			name:         "new password too short",
			oldPassword:  "old-password",
			newPassword:  "short",
			setupMock:    func(m *MockUserRepository) {},
			wantValidErr: true,
		},
		{
			name:         "new password exceeds bcrypt input limit",
			oldPassword:  "old-password",
			newPassword:  strings.Repeat("a", 73),
			setupMock:    func(m *MockUserRepository) {},
			wantValidErr: true,
		},
		{
			name:        "user row gone",
			oldPassword: "old-password",
			newPassword: "new-password-123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
			err := service.ChangePassword(context.Background(), 1, tt.oldPassword, tt.newPassword)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.wantValidErr:
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			default:
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "already normalized", input: "test@example.com", want: "test@example.com"},
		{name: "mixed case and spaces", input: "  Test@EXAMPLE.com ", want: "test@example.com"},
		{name: "missing at sign", input: "testexample.com", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.input)
			if tt.wantErr {
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
