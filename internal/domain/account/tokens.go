package account

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "dastarkhan/internal/core/context"
)

// TokenConfig holds JWT configuration.
type TokenConfig struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
}

// DefaultTokenConfig returns default JWT configuration.
func DefaultTokenConfig(secret string) TokenConfig {
	return TokenConfig{
		Secret:         secret,
		Issuer:         "dastarkhan",
		AccessTokenTTL: 24 * time.Hour,
	}
}

// Claims represents JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"uid"`
	PhoneNumber string `json:"phone"`
	Status      string `json:"status"`
	IsStaff     bool   `json:"staff,omitempty"`
	IsFeedback  bool   `json:"is_feedback"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"access"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// TokenService issues and validates access tokens.
type TokenService struct {
	config TokenConfig
	now    func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(config TokenConfig) *TokenService {
	return &TokenService{config: config, now: time.Now}
}

// Issue signs an access token for a.
func (s *TokenService) Issue(a *Account, hasFeedback bool) (*Token, error) {
	now := s.now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   a.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:      a.ID.String(),
		PhoneNumber: a.PhoneNumber,
		Status:      a.Status,
		IsStaff:     a.IsStaff,
		IsFeedback:  hasFeedback,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// Validate validates a token and returns the user context it carries.
func (s *TokenService) Validate(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &appctx.UserContext{
		UserID:      claims.UserID,
		PhoneNumber: claims.PhoneNumber,
		Status:      claims.Status,
		IsStaff:     claims.IsStaff,
		HasFeedback: claims.IsFeedback,
	}, nil
}
