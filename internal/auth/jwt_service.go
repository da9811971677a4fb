package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 4 * time.Hour
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 30 * 24 * time.Hour
)

// TokenKind discriminates access tokens from refresh tokens.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

var (
	// ErrTokenExpired is returned when a token's expiry window has elapsed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned for malformed tokens or bad signatures.
	ErrTokenMalformed = errors.New("token is malformed or signature is invalid")
	// ErrWrongTokenKind is returned when a refresh token is presented where an
	// access token is required, or vice versa.
	ErrWrongTokenKind = errors.New("wrong token type")
)

// Claims represents JWT claims carrying the user identity and token kind.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed, time-limited bearer tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateAccessToken issues a short-lived access token for the user.
func (s *JWTService) GenerateAccessToken(userID uint, email string) (string, error) {
	return s.generate(KindAccess, userID, email, AccessTokenExpiry)
}

// GenerateRefreshToken issues a long-lived refresh token for the user.
func (s *JWTService) GenerateRefreshToken(userID uint, email string) (string, error) {
	return s.generate(KindRefresh, userID, email, RefreshTokenExpiry)
}

func (s *JWTService) generate(kind TokenKind, userID uint, email string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token of the expected kind and returns its claims.
// Failures are distinguished as ErrTokenExpired, ErrTokenMalformed or
// ErrWrongTokenKind.
func (s *JWTService) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.TokenType != string(kind) {
		return nil, ErrWrongTokenKind
	}

	return claims, nil
}
