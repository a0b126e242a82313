// Package handler provides HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"user_service/internal/feature/users/domain/entity"
	"user_service/internal/feature/users/transport/http/dto"
	"user_service/internal/feature/users/usecase"
)

// UserUsecase defines the identity workflow operations the handler depends on.
// Following Go convention, the interface is defined by the consumer (handler),
// not the provider (usecase).
type UserUsecase interface {
	// Register creates a new account and returns its public view with a token.
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	// Login authenticates a user and returns its public view with a token.
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.AuthResult, error)
	// GetUser returns the public view for an id.
	GetUser(ctx context.Context, id string) (*entity.PublicUser, error)
	// UpdateUser applies a profile patch and returns the updated public view.
	UpdateUser(ctx context.Context, id string, in usecase.UpdateUserInput) (*entity.PublicUser, error)
}

// UserHandler handles HTTP requests for identity operations.
// It depends on the UserUsecase interface and maps workflow errors to
// HTTP status codes.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// writeError maps a workflow error to its HTTP status code and body.
// Unclassified errors become 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	var vErr *usecase.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: vErr.Message})
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

// Register handles the user registration API endpoint.
// - binds the request JSON into RegisterReq
// - returns 400 for malformed bodies or invalid fields
// - returns 409 when the email is already taken
// - returns 201 with the public account view and a token on success
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	result, err := h.users.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
		Name:     req.Name,
	})
	if err != nil {
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user registered", "user_id", result.User.ID, "email", result.User.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SuccessResponse{Success: true, Data: result})
}

// Login handles the user login API endpoint.
// - binds the request JSON into LoginReq
// - returns 400 for malformed bodies or invalid fields
// - returns 401 for bad credentials
// - returns 200 with the public account view and a token on success
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login bind failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	result, err := h.users.Login(c.Request.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user login successful", "user_id", result.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Data: result})
}

// GetUser handles GET /api/users/:id.
// Returns 404 when no account exists, 200 with the public view otherwise.
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		slog.Warn("get user failed", "error", err, "user_id", id, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Data: user})
}

// UpdateUser handles PUT /api/users/:id.
// - binds the request JSON into UpdateUserReq
// - returns 400 for malformed bodies or invalid fields
// - returns 404 when no account exists
// - returns 200 with the updated public view on success
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update bind failed", "error", err, "user_id", id, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	in := usecase.UpdateUserInput{
		Email: req.Email,
		Name:  req.Name,
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, in)
	if err != nil {
		slog.Warn("update user failed", "error", err, "user_id", id, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user updated", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Data: user})
}
