package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/shared/apperr"
	"task_backend/internal/shared/async"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user together with its first session token in one transaction.
	// first may be nil. It returns domain.ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, user *entity.User, first *entity.Token) error

	// FindByEmail retrieves the user with the given normalized email.
	// It returns domain.ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user with the given id.
	// It returns domain.ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// WelcomeSender sends the signup notification.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, email, name string) error
}

// SignupInput carries the already-parsed signup fields.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

// authUsecase implements signup, login and logout.
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenManager
	mailer WelcomeSender
	notify func(ctx context.Context, op string, fn func(ctx context.Context) error)
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens *TokenManager, mailer WelcomeSender) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		notify: func(ctx context.Context, op string, fn func(ctx context.Context) error) {
			async.Go(ctx, op, async.DefaultTimeout, fn)
		},
	}
}

// Signup validates and stores a new user, then issues its first session token.
// The password is hashed before the user reaches the repository.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, string, error) {
	verr := &apperr.ValidationError{}
	user := &entity.User{
		Name:  domain.NormalizeName(verr, in.Name),
		Email: domain.NormalizeEmail(verr, in.Email),
	}
	password := domain.NormalizePassword(verr, in.Password)
	if in.Age != nil {
		domain.CheckAge(verr, *in.Age)
		user.Age = *in.Age
	}
	if err := verr.OrNil(); err != nil {
		return nil, "", err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = hashed

	// the token embeds the id, so the id is chosen before the insert
	user.ID = uuid.NewString()
	token, err := u.tokens.Mint(user.ID)
	if err != nil {
		return nil, "", err
	}
	if err := u.users.Create(ctx, user, token); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, "", apperr.NewValidationError("email", "is already in use")
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	email, name := user.Email, user.Name
	u.notify(ctx, "send welcome email", func(ctx context.Context) error {
		return u.mailer.SendWelcome(ctx, email, name)
	})
	return user, token.Value, nil
}

// Login authenticates the user and issues a new session token.
// A password comparison runs even when the email is unknown to keep timing uniform.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	verr := &apperr.ValidationError{}
	email = domain.NormalizeEmail(verr, email)

	user, err := u.users.FindByEmail(ctx, email)
	hash := ""
	if err == nil {
		hash = user.PasswordHash
	}
	matched := u.hasher.Compare(hash, password)

	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}
	if err != nil || !matched {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes only the token presented with the request.
func (u *authUsecase) Logout(ctx context.Context, user *entity.User, token string) error {
	return u.tokens.Revoke(ctx, user.ID, token)
}

// LogoutAll revokes every token of the user.
func (u *authUsecase) LogoutAll(ctx context.Context, user *entity.User) error {
	return u.tokens.RevokeAll(ctx, user.ID)
}
