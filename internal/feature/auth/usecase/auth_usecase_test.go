package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/shared/apperr"
)

func newTestAuthUsecase(repo *mockUserRepository, mailer *mockWelcomeSender) (*authUsecase, *memoryTokenRepository) {
	tokens := newMemoryTokenRepository()
	tm := NewTokenManager(&fakeSigner{}, tokens, repo)
	uc := NewAuthUsecase(repo, plainHasher{}, tm, mailer)
	uc.notify = runInline
	return uc, tokens
}

func intPtr(v int) *int { return &v }

func TestAuthUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("successful signup", func(t *testing.T) {
		var stored *entity.User
		var first *entity.Token
		repo := &mockUserRepository{
			CreateFunc: func(user *entity.User, tok *entity.Token) error {
				stored, first = user, tok
				return nil
			},
		}
		mailer := &mockWelcomeSender{}
		uc, tokens := newTestAuthUsecase(repo, mailer)

		user, token, err := uc.Signup(ctx, SignupInput{
			Name:     "  Andrew ",
			Email:    " Andrew@Example.com ",
			Password: "red12345!",
			Age:      intPtr(27),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Andrew", user.Name)
		assert.Equal(t, "andrew@example.com", user.Email)
		assert.Equal(t, 27, user.Age)
		// the plaintext never reaches the repository
		assert.NotEqual(t, "red12345!", stored.PasswordHash)
		assert.Equal(t, "hashed:red12345!", stored.PasswordHash)
		// the first token is stored with the user, not separately
		require.NotNil(t, first)
		assert.Equal(t, token, first.Value)
		assert.Equal(t, user.ID, first.UserID)
		assert.Empty(t, tokens.tokensOf(user.ID))
		assert.Equal(t, []string{"andrew@example.com"}, mailer.sent)
	})

	t.Run("signing failure stores nothing", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(*entity.User, *entity.Token) error {
				t.Fatal("Create must not be called")
				return nil
			},
		}
		tm := NewTokenManager(&fakeSigner{signErr: errors.New("no key")}, newMemoryTokenRepository(), repo)
		uc := NewAuthUsecase(repo, plainHasher{}, tm, &mockWelcomeSender{})
		uc.notify = runInline

		_, _, err := uc.Signup(ctx, SignupInput{Name: "A", Email: "a@example.com", Password: "red12345!"})

		assert.EqualError(t, err, "failed to generate token: no key")
	})

	t.Run("all invalid fields are reported and nothing is stored", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(*entity.User, *entity.Token) error {
				t.Fatal("Create must not be called")
				return nil
			},
		}
		uc, _ := newTestAuthUsecase(repo, &mockWelcomeSender{})

		_, _, err := uc.Signup(ctx, SignupInput{Name: " ", Email: "nope", Password: "password123", Age: intPtr(-3)})

		var verr *apperr.ValidationError
		require.True(t, errors.As(err, &verr))
		fields := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, f.Field)
		}
		assert.ElementsMatch(t, []string{"name", "email", "password", "age"}, fields)
	})

	t.Run("duplicate email is a validation error", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(*entity.User, *entity.Token) error { return domain.ErrEmailAlreadyExists },
		}
		mailer := &mockWelcomeSender{}
		uc, _ := newTestAuthUsecase(repo, mailer)

		_, _, err := uc.Signup(ctx, SignupInput{Name: "A", Email: "a@example.com", Password: "red12345!"})

		var verr *apperr.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "email", verr.Fields[0].Field)
		assert.Empty(t, mailer.sent)
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockUserRepository{
			CreateFunc: func(*entity.User, *entity.Token) error { return expectedErr },
		}
		uc, _ := newTestAuthUsecase(repo, &mockWelcomeSender{})

		_, _, err := uc.Signup(ctx, SignupInput{Name: "A", Email: "a@example.com", Password: "red12345!"})

		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("email failure does not fail signup", func(t *testing.T) {
		mailer := &mockWelcomeSender{err: errors.New("sendgrid down")}
		uc, _ := newTestAuthUsecase(&mockUserRepository{}, mailer)

		_, token, err := uc.Signup(ctx, SignupInput{Name: "A", Email: "a@example.com", Password: "red12345!"})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()
	testUser := &entity.User{ID: "u1", Email: "test@example.com", PasswordHash: "hashed:red12345!"}
	repo := &mockUserRepository{
		FindByEmailFunc: func(email string) (*entity.User, error) {
			if email == testUser.Email {
				return testUser, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}

	t.Run("successful login normalizes the email", func(t *testing.T) {
		uc, tokens := newTestAuthUsecase(repo, &mockWelcomeSender{})

		user, token, err := uc.Login(ctx, " TEST@example.com", "red12345!")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, []string{token}, tokens.tokensOf("u1"))
	})

	t.Run("user not found", func(t *testing.T) {
		uc, _ := newTestAuthUsecase(repo, &mockWelcomeSender{})

		_, _, err := uc.Login(ctx, "wrong@example.com", "red12345!")

		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	})

	t.Run("incorrect password", func(t *testing.T) {
		uc, tokens := newTestAuthUsecase(repo, &mockWelcomeSender{})

		_, _, err := uc.Login(ctx, "test@example.com", "wrong-pass")

		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
		assert.Empty(t, tokens.tokensOf("u1"))
	})

	t.Run("repository failure is not reported as bad credentials", func(t *testing.T) {
		broken := &mockUserRepository{
			FindByEmailFunc: func(string) (*entity.User, error) { return nil, errors.New("db down") },
		}
		uc, _ := newTestAuthUsecase(broken, &mockWelcomeSender{})

		_, _, err := uc.Login(ctx, "test@example.com", "red12345!")

		require.Error(t, err)
		assert.NotErrorIs(t, err, apperr.ErrInvalidCredentials)
	})
}

func TestAuthUsecase_LogoutAndLogoutAll(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: "u1"}
	repo := &mockUserRepository{
		FindByIDFunc: func(string) (*entity.User, error) { return user, nil },
	}
	uc, tokens := newTestAuthUsecase(repo, &mockWelcomeSender{})

	a, err := uc.tokens.Issue(ctx, "u1")
	require.NoError(t, err)
	b, err := uc.tokens.Issue(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, user, a))
	assert.Equal(t, []string{b}, tokens.tokensOf("u1"))

	c, err := uc.tokens.Issue(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, uc.LogoutAll(ctx, user))
	for _, tok := range []string{a, b, c} {
		_, err := uc.tokens.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
