package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"user_service/internal/feature/users/domain/entity"
	"user_service/internal/feature/users/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError makes GORM report unique violations as gorm.ErrDuplicatedKey,
// which the adapter maps the same way as MySQL error 1062.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func testUser(email string) *entity.User {
	return &entity.User{
		Email:    email,
		Password: "hashed_password",
		Role:     entity.RoleCandidate,
		Name:     "Jo",
	}
}

func TestNewUserMySQL(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserMySQL(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserMySQL_Create(t *testing.T) {
	t.Run("successful user creation generates an id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := testUser("test@example.com")
		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotEmpty(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
	})

	t.Run("duplicate email maps to ErrUserAlreadyExists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		require.NoError(t, repo.Create(context.Background(), testUser("duplicate@example.com")))

		err := repo.Create(context.Background(), testUser("duplicate@example.com"))
		assert.ErrorIs(t, err, usecase.ErrUserAlreadyExists)
	})

	t.Run("distinct emails create distinct ids", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		u1 := testUser("a@example.com")
		u2 := testUser("b@example.com")
		require.NoError(t, repo.Create(context.Background(), u1))
		require.NoError(t, repo.Create(context.Background(), u2))

		assert.NotEqual(t, u1.ID, u2.ID)
	})
}

func TestUserMySQL_FindByEmail(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		created := testUser("find@example.com")
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByEmail(context.Background(), "find@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "hashed_password", found.Password)
		assert.Equal(t, entity.RoleCandidate, found.Role)
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		_, err := repo.FindByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserMySQL_FindByID(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		created := testUser("find@example.com")
		require.NoError(t, repo.Create(context.Background(), created))

		found, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "find@example.com", found.Email)
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		_, err := repo.FindByID(context.Background(), "nonexistent-id")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserMySQL_UpdateByID(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	rolePtr := func(r entity.Role) *entity.Role { return &r }

	t.Run("applies only the patched fields", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		created := testUser("before@example.com")
		require.NoError(t, repo.Create(context.Background(), created))

		updated, err := repo.UpdateByID(context.Background(), created.ID, usecase.UpdateUserInput{
			Name: strPtr("Joanna"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Joanna", updated.Name)
		assert.Equal(t, "before@example.com", updated.Email, "email must be unchanged")

		stored, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Joanna", stored.Name)
	})

	t.Run("email and role change persists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		created := testUser("before@example.com")
		require.NoError(t, repo.Create(context.Background(), created))

		updated, err := repo.UpdateByID(context.Background(), created.ID, usecase.UpdateUserInput{
			Email: strPtr("after@example.com"),
			Role:  rolePtr(entity.RoleAdmin),
		})
		require.NoError(t, err)
		assert.Equal(t, "after@example.com", updated.Email)
		assert.Equal(t, entity.RoleAdmin, updated.Role)

		_, err = repo.FindByEmail(context.Background(), "before@example.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "old email must no longer resolve")
	})

	t.Run("empty patch returns the current record", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		created := testUser("same@example.com")
		require.NoError(t, repo.Create(context.Background(), created))

		updated, err := repo.UpdateByID(context.Background(), created.ID, usecase.UpdateUserInput{})
		require.NoError(t, err)
		assert.Equal(t, "same@example.com", updated.Email)
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		_, err := repo.UpdateByID(context.Background(), "nonexistent-id", usecase.UpdateUserInput{
			Name: strPtr("Jo"),
		})
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("email collision maps to ErrUserAlreadyExists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		require.NoError(t, repo.Create(context.Background(), testUser("taken@example.com")))
		other := testUser("other@example.com")
		require.NoError(t, repo.Create(context.Background(), other))

		_, err := repo.UpdateByID(context.Background(), other.ID, usecase.UpdateUserInput{
			Email: strPtr("taken@example.com"),
		})
		assert.ErrorIs(t, err, usecase.ErrUserAlreadyExists)
	})
}
