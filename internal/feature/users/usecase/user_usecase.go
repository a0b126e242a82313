package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"user_service/internal/feature/users/domain/entity"
)

const (
	// cacheTTL is the fixed lifetime of every user cache entry.
	cacheTTL = 3600 * time.Second

	// dummyHash keeps bcrypt comparison running when the email is unknown,
	// so login latency does not reveal whether an account exists.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the durable record store for user entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters). The store is the single authority for the
// email-uniqueness invariant.
type UserRepository interface {
	// Create persists a new user and fills in the store-generated fields.
	// It returns ErrUserAlreadyExists when the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// UpdateByID applies the non-nil patch fields and returns the updated
	// record. It returns ErrUserNotFound if the user does not exist and
	// ErrUserAlreadyExists if a patched email is already taken.
	UpdateByID(ctx context.Context, id string, patch UpdateUserInput) (*entity.User, error)
}

// CacheRepository abstracts the cache store. Values are opaque JSON bytes;
// the cache knows nothing about the domain shape. Implementations must
// report absence and unavailability as ErrCacheMiss so a cache outage
// degrades to store-only reads instead of failing the operation.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// TokenGenerator mints signed auth tokens carrying subject id and role.
type TokenGenerator interface {
	GenerateToken(userID string, role entity.Role) (string, error)
}

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     entity.Role `json:"role" validate:"required,user_role"`
	Name     string      `json:"name" validate:"required,min=2"`
}

// LoginInput is the payload for user authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput is the patch payload for profile updates.
// All fields are optional; nil means "leave unchanged".
type UpdateUserInput struct {
	Email *string      `json:"email" validate:"omitempty,email"`
	Name  *string      `json:"name" validate:"omitempty,min=2"`
	Role  *entity.Role `json:"role" validate:"omitempty,user_role"`
}

// AuthResult pairs the public account view with a freshly minted token.
type AuthResult struct {
	User  entity.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// userUsecase orchestrates validation, cache-aside reads, store writes,
// cache invalidation and token issuance for the users feature. It is the
// only writer of user cache entries.
type userUsecase struct {
	users    UserRepository
	cache    CacheRepository
	tokens   TokenGenerator
	validate *validator.Validate
}

// NewUserUsecase creates a new instance of userUsecase.
func NewUserUsecase(users UserRepository, cache CacheRepository, tokens TokenGenerator) *userUsecase {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Role values are validated against the domain enum.
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return entity.Role(fl.Field().String()).IsValid()
	})
	return &userUsecase{
		users:    users,
		cache:    cache,
		tokens:   tokens,
		validate: v,
	}
}

// emailKey returns the cache key holding the full record for an email.
func emailKey(email string) string {
	return "user:email:" + email
}

// idKey returns the cache key holding the public projection for an id.
func idKey(id string) string {
	return "user:id:" + id
}

// normalizeEmail lowers and trims an email so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateInput runs schema validation and wraps failures as ValidationError.
func (u *userUsecase) validateInput(in any) error {
	if err := u.validate.Struct(in); err != nil {
		return newValidationError(err.Error())
	}
	return nil
}

// cacheSet marshals v and stores it best effort. Cache write failures leave
// the cache stale or cold for at most the TTL window; they never fail the
// operation.
func (u *userUsecase) cacheSet(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = u.cache.Set(ctx, key, b, cacheTTL)
	}
}

// findByEmailCached is the cache-aside read path for email lookups:
// check the email key, fall back to the store on miss, repopulate on hit.
// Any cache failure is treated as a miss.
func (u *userUsecase) findByEmailCached(ctx context.Context, email string) (*entity.User, error) {
	key := emailKey(email)

	if b, err := u.cache.Get(ctx, key); err == nil && len(b) > 0 {
		var user entity.User
		if err := json.Unmarshal(b, &user); err == nil && user.ID != "" {
			return &user, nil
		}
		// Drop corrupted entries and fall through to the store.
		_ = u.cache.Delete(ctx, key)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	u.cacheSet(ctx, key, user)
	return user, nil
}

// Register creates a new account, populates both cache keys and issues a token.
// The store's unique index is the authority for duplicate emails; the
// cache-aside pre-check only saves a round-trip in the common case.
func (u *userUsecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := u.validateInput(in); err != nil {
		return nil, err
	}

	_, err := u.findByEmailCached(ctx, in.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:    in.Email,
		Password: string(hashed),
		Role:     in.Role,
		Name:     in.Name,
	}
	// A register race between the pre-check and this insert surfaces here
	// as the store's uniqueness violation.
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	u.cacheSet(ctx, idKey(user.ID), user.Public())
	u.cacheSet(ctx, emailKey(user.Email), user)

	token, err := u.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login authenticates a user and returns a fresh token on success.
// Unknown email and wrong password produce the same error, and a bcrypt
// comparison runs in both cases to keep timing comparable.
func (u *userUsecase) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := u.validateInput(in); err != nil {
		return nil, err
	}

	user, err := u.findByEmailCached(ctx, in.Email)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password))

	if err != nil || compareErr != nil {
		// Store failures are not credential failures.
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	u.cacheSet(ctx, idKey(user.ID), user.Public())

	token, err := u.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// GetUser returns the public projection for an id, cache first.
// Whatever shape the cache holds, the result is re-projected so the
// password hash can never leak through a cache hit.
func (u *userUsecase) GetUser(ctx context.Context, id string) (*entity.PublicUser, error) {
	key := idKey(id)

	if b, err := u.cache.Get(ctx, key); err == nil && len(b) > 0 {
		var pub entity.PublicUser
		if err := json.Unmarshal(b, &pub); err == nil && pub.ID != "" {
			return &pub, nil
		}
		_ = u.cache.Delete(ctx, key)
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pub := user.Public()
	u.cacheSet(ctx, key, pub)
	return &pub, nil
}

// UpdateUser applies a profile patch and keeps the cache coherent:
// the id key is refreshed with the updated projection, and on an email
// change both the previous and the requested email keys are invalidated
// so no stale email-keyed lookup can resolve to a superseded account.
func (u *userUsecase) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.PublicUser, error) {
	if in.Email != nil {
		normalized := normalizeEmail(*in.Email)
		in.Email = &normalized
	}
	if err := u.validateInput(in); err != nil {
		return nil, err
	}

	// The previous email is needed to invalidate its cache key.
	var prevEmail string
	if in.Email != nil {
		current, err := u.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		prevEmail = current.Email
	}

	user, err := u.users.UpdateByID(ctx, id, in)
	if err != nil {
		return nil, err
	}

	pub := user.Public()
	u.cacheSet(ctx, idKey(id), pub)

	if in.Email != nil {
		_ = u.cache.Delete(ctx, emailKey(prevEmail))
		if user.Email != prevEmail {
			_ = u.cache.Delete(ctx, emailKey(user.Email))
		}
	}

	return &pub, nil
}
