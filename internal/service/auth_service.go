package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktracker/internal/auth"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
	"tasktracker/internal/validation"
)

const bcryptCost = 10

// AuthService handles registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password, confirmPassword string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	DeleteAccount(ctx context.Context, userID uint) error
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a new user with a hashed password. Field problems are
// collected into one ValidationError; uniqueness of username and email is
// checked inside a single transaction so the operation fails atomically when
// either is taken.
func (s *authService) Register(ctx context.Context, username, email, password, confirmPassword string) (*model.User, error) {
	username = validation.Sanitize(username)
	email = validation.Sanitize(email)

	var errs []string
	if utf8.RuneCountInString(username) < 3 {
		errs = append(errs, "Username must be at least 3 characters long.")
	}
	if email == "" || !strings.Contains(email, "@") {
		errs = append(errs, "Please enter a valid email address.")
	}
	if len(password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long.")
	}
	if password != confirmPassword {
		errs = append(errs, "Passwords do not match.")
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if _, err := repo.FindByUsername(ctx, username); err == nil {
			return apperrors.ErrUsernameTaken
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("check username: %w", err)
		}

		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return apperrors.ErrEmailTaken
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("check email: %w", err)
		}

		if err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and establishes a session. A missing user and a
// wrong password are indistinguishable to the caller; the stored hash never
// leaves this layer.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error) {
	username = validation.Sanitize(username)

	user, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.sessionStore.StoreSession(ctx, tokenID, user.ID, user.Username, auth.SessionExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store session: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token against its session record and
// returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrSessionNotFound
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrSessionNotFound
	}

	storedUserID, storedUsername, err := s.sessionStore.GetSession(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrSessionNotFound
	}

	if storedUserID != claims.UserID || storedUsername != claims.Username {
		return "", apperrors.ErrSessionNotFound
	}

	accessToken, err = s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout clears the session identity.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrSessionNotFound
	}
	return s.sessionStore.DeleteSession(ctx, tokenID)
}

// DeleteAccount removes the user and, with it, every task the user owns.
func (s *authService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
