package adapters

import (
	"time"

	"task_backend/internal/feature/auth/domain/entity"
)

// TokenModel is the GORM model for the tokens table.
// The autoincrement ID preserves issuance order within a user's set.
type TokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"size:36;index;not null"`
	Value     string    `gorm:"size:512;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (TokenModel) TableName() string {
	return "tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TokenModel) ToEntity() *entity.Token {
	return &entity.Token{
		Value:    m.Value,
		UserID:   m.UserID,
		IssuedAt: m.CreatedAt,
	}
}

// TokenModelFromEntity converts a domain entity to a GORM model.
func TokenModelFromEntity(t *entity.Token) *TokenModel {
	return &TokenModel{
		UserID:    t.UserID,
		Value:     t.Value,
		CreatedAt: t.IssuedAt,
	}
}
