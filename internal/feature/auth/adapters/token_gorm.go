package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
)

// tokenGorm is the GORM implementation of the TokenRepository interface.
type tokenGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure tokenGorm implements TokenRepository.
var _ usecase.TokenRepository = (*tokenGorm)(nil)

// NewTokenGorm creates a new instance of tokenGorm.
func NewTokenGorm(db *gorm.DB) *tokenGorm {
	return &tokenGorm{db: db}
}

// Add appends a token to its user's set.
func (r *tokenGorm) Add(ctx context.Context, token *entity.Token) error {
	if token == nil {
		return fmt.Errorf("token is nil")
	}
	return r.db.WithContext(ctx).Create(TokenModelFromEntity(token)).Error
}

// Contains reports whether value is currently a member of userID's set.
func (r *tokenGorm) Contains(ctx context.Context, userID, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TokenModel{}).
		Where("user_id = ? AND value = ?", userID, value).
		Count(&count).Error
	return count > 0, err
}

// Remove deletes one exact token. Deleting an absent token affects no rows and is not an error.
func (r *tokenGorm) Remove(ctx context.Context, userID, value string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND value = ?", userID, value).
		Delete(&TokenModel{}).Error
}

// RemoveAll empties userID's set.
func (r *tokenGorm) RemoveAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&TokenModel{}).Error
}
