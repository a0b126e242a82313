package router

import (
	"github.com/gin-gonic/gin"

	"user_service/internal/feature/users/domain/entity"
	userhandler "user_service/internal/feature/users/transport/handler"
	jwtmw "user_service/internal/platform/jwt"
	"user_service/internal/platform/http/handler"
)

// NewRouter builds the gin engine with the service's route table.
func NewRouter(users *userhandler.UserHandler) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")

	// Public routes
	api.POST("/register", users.Register)
	api.POST("/login", users.Login)

	// Protected routes (require a valid bearer token)
	auth := api.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/users/:id", users.GetUser)
		// Profile updates are restricted to administrators.
		auth.PUT("/users/:id", jwtmw.RoleRequired(entity.RoleAdmin), users.UpdateUser)
	}

	return r
}
