package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktracker/internal/auth"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTransaction runs fn against the mock itself so expectations cover the
// calls made inside the transaction.
func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	return fn(ctx, m)
}

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) StoreSession(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name            string
		username        string
		email           string
		password        string
		confirmPassword string
		setupMock       func(*MockUserRepository)
		expectedError   error
	}{
		{
			name:            "successful registration",
			username:        "alice",
			email:           "alice@example.com",
			password:        "password123",
			confirmPassword: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:            "username already exists",
			username:        "alice",
			email:           "new@example.com",
			password:        "password123",
			confirmPassword: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:            "email already registered",
			username:        "bob",
			email:           "alice@example.com",
			password:        "password123",
			confirmPassword: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{Email: "alice@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockStore := new(MockSessionStore)

			service := NewAuthService(mockRepo, jwtService, mockStore)
			user, err := service.Register(context.Background(), tt.username, tt.email, tt.password, tt.confirmPassword)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_CollectsFieldErrors(t *testing.T) {
	mockRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockRepo, jwtService, new(MockSessionStore))

	user, err := service.Register(context.Background(), "ab", "not-an-email", "short", "different")

	assert.Nil(t, user)
	var vErr *apperrors.ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		assert.Equal(t, []string{
			"Username must be at least 3 characters long.",
			"Please enter a valid email address.",
			"Password must be at least 6 characters long.",
			"Passwords do not match.",
		}, vErr.Errors)
	}
	// No store interaction on validation failure.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockSessionStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mStore *MockSessionStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           7,
					Username:     "alice",
					PasswordHash: string(hashedPassword),
				}, nil)
				mStore.On("StoreSession", mock.Anything, mock.Anything, uint(7), "alice", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mStore *MockSessionStore) {
				mRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(mRepo *MockUserRepository, mStore *MockSessionStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           7,
					Username:     "alice",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockSessionStore)
			tt.setupMock(mockRepo, mockStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice")
	assert.NoError(t, err)

	mockStore := new(MockSessionStore)
	mockStore.On("GetSession", mock.Anything, tokenID).Return(uint(7), "alice", nil)
	mockStore.On("DeleteSession", mock.Anything, tokenID).Return(nil)

	service := NewAuthService(new(MockUserRepository), jwtService, mockStore)

	accessToken, err := service.RefreshToken(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	assert.NoError(t, service.Logout(context.Background(), refreshToken))

	_, err = service.RefreshToken(context.Background(), "not-a-token")
	assert.Equal(t, apperrors.ErrSessionNotFound, err)

	mockStore.AssertExpectations(t)
}
