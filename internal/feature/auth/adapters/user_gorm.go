// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
	taskentity "task_backend/internal/feature/task/domain/entity"
	"task_backend/internal/platform/db"
)

// userGorm is the GORM implementation of the user repositories.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm with the given gorm.DB connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create adds the user and, when first is set, its first session token in one transaction.
// An id is assigned when none is set. It returns domain.ErrEmailAlreadyExists when the email is taken.
func (r *userGorm) Create(ctx context.Context, u *entity.User, first *entity.Token) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if first != nil && first.UserID != u.ID {
		return fmt.Errorf("token belongs to user %q, not %q", first.UserID, u.ID)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			if db.IsDuplicateKey(err) {
				return domain.ErrEmailAlreadyExists
			}
			return err
		}
		if first == nil {
			return nil
		}
		if err := tx.Create(TokenModelFromEntity(first)).Error; err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		return nil
	})
}

// FindByEmail retrieves a user by normalized email, without the avatar blob.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Omit("Avatar").Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by id, without the avatar blob.
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Omit("Avatar").Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update writes the mutable profile columns of u in a single statement.
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&entity.User{ID: u.ID}).
		Select("Name", "Email", "Age", "PasswordHash", "UpdatedAt").
		Updates(u)
	if result.Error != nil {
		if db.IsDuplicateKey(result.Error) {
			return domain.ErrEmailAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// FindAvatar returns the stored avatar blob, which is nil when none was uploaded.
func (r *userGorm) FindAvatar(ctx context.Context, id string) ([]byte, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Select("id", "avatar").Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u.Avatar, nil
}

// UpdateAvatar replaces the avatar column in one statement; a nil blob clears it.
func (r *userGorm) UpdateAvatar(ctx context.Context, id string, avatar []byte) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"avatar": avatar, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user's tasks, its token set and then the user itself in one transaction.
func (r *userGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&taskentity.Task{}).Error; err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&TokenModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete tokens: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&entity.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}
