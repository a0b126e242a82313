package jwtmw

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"user_service/internal/feature/users/domain/entity"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// EnvKeyJWTSecret is the environment variable holding the token signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Validation error, expired or invalid token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// 4. Extract claims (payload)
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok {
				c.Set(ContextUserID, sub)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(ContextUserRole, entity.Role(role))
			}
		}
		// 5. Pass control to the next handler
		c.Next()
	}
}

// RoleRequired returns a Gin middleware that allows only the given roles.
// It must run after AuthRequired, which populates the role in the context.
func RoleRequired(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextUserRole)
		if exists {
			role, ok := v.(entity.Role)
			if ok {
				for _, allowed := range roles {
					if role == allowed {
						c.Next()
						return
					}
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
	}
}
