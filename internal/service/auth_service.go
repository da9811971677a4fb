package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"fitcloset/internal/auth"
	apperrors "fitcloset/internal/errors"
	"fitcloset/internal/model"
	"fitcloset/internal/repository"
)

const (
	minPasswordLength = 8
	// bcrypt rejects inputs over 72 bytes, so the bound is validated up
	// front instead of surfacing as a hashing failure.
	maxPasswordLength = 72
	minFullNameLength = 2
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailRegistered is returned when registering an already used email.
	ErrEmailRegistered = errors.New("email already registered")
	// ErrUserNotFound is returned when the authenticated user row is gone.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongOldPassword is returned when a password change presents a wrong
	// current password.
	ErrWrongOldPassword = errors.New("old password is incorrect")
	// ErrInvalidRefreshToken is returned when a refresh token fails verification.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles registration, login and token operations.
type AuthService interface {
	Register(ctx context.Context, email, fullName, password string) (user *model.User, accessToken, refreshToken string, err error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	CurrentUser(ctx context.Context, userID uint) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// NormalizeEmail trims, lower-cases and format-checks an email address. It is
// applied before every store call that takes an email.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperrors.Validation("Invalid email address")
	}
	return email, nil
}

// Register creates a new user and issues both tokens. The duplicate-email
// check runs before the insert; a concurrent duplicate registration between
// check and insert is an accepted race.
func (s *authService) Register(ctx context.Context, email, fullName, password string) (*model.User, string, string, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, "", "", err
	}
	if len(strings.TrimSpace(fullName)) < minFullNameLength {
		return nil, "", "", apperrors.Validation("Full name must be at least 2 characters long")
	}
	if len(password) < minPasswordLength {
		return nil, "", "", apperrors.Validation("Password must be at least 8 characters long")
	}
	if len(password) > maxPasswordLength {
		return nil, "", "", apperrors.Validation("Password must be at most 72 characters long")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", "", ErrEmailRegistered
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", fmt.Errorf("check email existence: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", fmt.Errorf("create user: %w", err)
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Login authenticates a user and returns access and refresh tokens. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, user, nil
}

// Refresh verifies a refresh token and issues a new access token. An access
// token presented here fails with the same error as any other invalid token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.Verify(refreshToken, auth.KindRefresh)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// CurrentUser loads the authenticated caller's user row.
func (s *authService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the old password and rotates the stored hash.
func (s *authService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.Validation("New password must be at least 8 characters long")
	}
	if len(newPassword) > maxPasswordLength {
		return apperrors.Validation("New password must be at most 72 characters long")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, oldPassword) {
		return ErrWrongOldPassword
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.userRepo.Update(ctx, userID, model.UserPatch{PasswordHash: &newHash}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) issueTokens(user *model.User) (string, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}
