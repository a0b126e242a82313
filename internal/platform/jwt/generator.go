package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"user_service/internal/feature/users/domain/entity"
)

// Generator defines the interface for auth token generation.
type Generator interface {
	// GenerateToken creates a signed JWT for the given user id and role.
	GenerateToken(userID string, role entity.Role) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed HS256 token carrying subject id and role.
func (g *generator) GenerateToken(userID string, role entity.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(g.expiration).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
