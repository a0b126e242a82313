// Package adapters provides repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"user_service/internal/feature/users/domain/entity"
	"user_service/internal/feature/users/usecase"
)

// userMySQL is the MySQL implementation of the UserRepository interface.
// It uses GORM for database operations and owns the email-uniqueness
// invariant via the unique index on the email column.
type userMySQL struct {
	db *gorm.DB
}

// Compile-time check that userMySQL implements UserRepository.
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL creates a new userMySQL instance with the given gorm.DB connection.
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// isDuplicateErr reports whether err is a unique-constraint violation.
// MySQL reports error 1062; other GORM dialects report gorm.ErrDuplicatedKey.
func isDuplicateErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create inserts a user, generating its ID. It returns
// usecase.ErrUserAlreadyExists when the email is already taken.
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateErr(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email address.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userMySQL) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userMySQL) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateByID applies the non-nil patch fields and returns the updated record.
// It returns usecase.ErrUserNotFound if the user does not exist and
// usecase.ErrUserAlreadyExists if a patched email collides with another user.
func (r *userMySQL) UpdateByID(ctx context.Context, id string, patch usecase.UpdateUserInput) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]any{}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if len(updates) == 0 {
		return &u, nil
	}

	if err := r.db.WithContext(ctx).Model(&u).Updates(updates).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, usecase.ErrUserAlreadyExists
		}
		return nil, err
	}

	// Reload so the returned record reflects exactly what was persisted.
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
