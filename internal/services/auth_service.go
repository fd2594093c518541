package services

import (
	"crypto/subtle"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

// AuthService checks the shared admin API key and issues short-lived admin tokens.
type AuthService struct {
	apiKey     []byte
	apiKeyHash []byte
	jwtSecret  []byte
	tokenTTL   time.Duration
}

// AuthConfig configures the AuthService. When APIKeyHash (bcrypt) is set it
// takes precedence over the plain APIKey.
type AuthConfig struct {
	APIKey     string
	APIKeyHash string
	JWTSecret  string
	TokenTTL   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{
		apiKey:     []byte(cfg.APIKey),
		apiKeyHash: []byte(cfg.APIKeyHash),
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   ttl,
	}
}

// Authenticate reports whether key matches the configured admin API key.
func (s *AuthService) Authenticate(key string) bool {
	if key == "" {
		return false
	}
	if len(s.apiKeyHash) > 0 {
		return bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(key)) == nil
	}
	if len(s.apiKey) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(s.apiKey, []byte(key)) == 1
}

// IssueToken returns a signed admin token valid for the configured duration.
func (s *AuthService) IssueToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": adminSubject,
		"exp": now.Add(s.tokenTTL).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates an admin token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims["sub"] != adminSubject {
		return nil, fmt.Errorf("invalid token subject")
	}
	return claims, nil
}
