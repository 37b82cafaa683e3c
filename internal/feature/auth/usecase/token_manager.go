package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/shared/apperr"
)

// TokenSigner signs and parses session tokens.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/jwt).
type TokenSigner interface {
	// Sign returns a signed token embedding userID.
	Sign(userID string) (string, error)
	// Parse verifies the signature and returns the embedded user id.
	Parse(token string) (string, error)
}

// TokenRepository persists each user's ordered set of session tokens.
type TokenRepository interface {
	// Add appends a token to its user's set.
	Add(ctx context.Context, token *entity.Token) error
	// Contains reports whether value is currently in userID's set.
	Contains(ctx context.Context, userID, value string) (bool, error)
	// Remove deletes one exact token; removing an absent token is not an error.
	Remove(ctx context.Context, userID, value string) error
	// RemoveAll empties userID's set.
	RemoveAll(ctx context.Context, userID string) error
}

// UserReader loads users by id.
type UserReader interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// TokenManager issues, verifies and revokes session tokens.
//
// A token grants access only while it is a member of its user's stored token set;
// a valid signature alone is not enough.
type TokenManager struct {
	signer TokenSigner
	tokens TokenRepository
	users  UserReader
	now    func() time.Time
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(signer TokenSigner, tokens TokenRepository, users UserReader) *TokenManager {
	return &TokenManager{
		signer: signer,
		tokens: tokens,
		users:  users,
		now:    time.Now,
	}
}

// Mint signs a new token for userID without storing it.
// The caller persists it, for example together with a new user.
func (m *TokenManager) Mint(userID string) (*entity.Token, error) {
	value, err := m.signer.Sign(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &entity.Token{Value: value, UserID: userID, IssuedAt: m.now()}, nil
}

// Issue signs a new token for userID and appends it to the user's token set.
func (m *TokenManager) Issue(ctx context.Context, userID string) (string, error) {
	token, err := m.Mint(userID)
	if err != nil {
		return "", err
	}
	if err := m.tokens.Add(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token.Value, nil
}

// Verify resolves token to its user.
// It fails with ErrInvalidToken when the signature is bad, the user no longer exists,
// or the token has been revoked. Verify never changes the token set.
func (m *TokenManager) Verify(ctx context.Context, token string) (*entity.User, error) {
	userID, err := m.signer.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}

	ok, err := m.tokens.Contains(ctx, userID, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token set: %w", err)
	}
	if !ok {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Revoke removes one token from userID's set. It is idempotent.
func (m *TokenManager) Revoke(ctx context.Context, userID, token string) error {
	if err := m.tokens.Remove(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAll clears userID's token set.
func (m *TokenManager) RevokeAll(ctx context.Context, userID string) error {
	if err := m.tokens.RemoveAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}
