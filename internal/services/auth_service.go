package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and validates admin tokens. Product mutation and order
// management are gated on a single admin principal: the configured admin key
// is exchanged for a short-lived JWT, and protected routes require that
// token. This replaces embedding the shared secret in every request.
type AuthService struct {
	adminKeyHash  []byte // bcrypt hash of the admin key
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService. adminKeyHash must be a bcrypt
// hash of the admin key.
func NewAuthService(adminKeyHash []byte, jwtSecret string) *AuthService {
	return &AuthService{
		adminKeyHash:  adminKeyHash,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// AdminLogin checks the presented admin key and returns a signed admin token.
func (s *AuthService) AdminLogin(adminKey string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.adminKeyHash, []byte(adminKey)); err != nil {
		return "", fmt.Errorf("invalid admin key")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(s.tokenDuration).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
