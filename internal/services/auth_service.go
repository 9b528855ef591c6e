package services

import (
	"errors"
	"fmt"
	"time"

	"lapak/internal/engine"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidToken = errors.New("invalid token")

// AuthService signs and verifies caller identity tokens. Credentials and
// sessions live in an upstream identity provider; this service only reads
// the identity it asserts.
type AuthService struct {
	jwtSecret     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
		now:           time.Now,
	}
}

// IssueToken signs an HS256 token carrying caller.
func (s *AuthService) IssueToken(caller engine.Caller) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   caller.UserID,
		"vendor_id": caller.VendorID,
		"role":      string(caller.Role),
		"exp":       now.Add(s.tokenDuration).Unix(),
		"iat":       now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifies tokenString and returns the caller it identifies.
func (s *AuthService) ValidateToken(tokenString string) (engine.Caller, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return engine.Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return engine.Caller{}, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	vendorID, _ := claims["vendor_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return engine.Caller{}, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}

	caller := engine.Caller{UserID: userID, VendorID: vendorID, Role: engine.Role(role)}
	switch caller.Role {
	case engine.RoleCustomer, engine.RoleVendor, engine.RoleAdmin:
	default:
		return engine.Caller{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}
	return caller, nil
}
