// Package usecase implements profile management for the authenticated user:
// reading and updating the profile, deleting the account and managing the avatar.
package usecase

import (
	"context"
	"errors"
	"fmt"

	authdomain "task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/profile/domain"
	"task_backend/internal/shared/apperr"
	"task_backend/internal/shared/async"
)

// ProfileRepository abstracts the persistence of user profiles and avatars.
type ProfileRepository interface {
	// Update writes name, email, age and password hash.
	// It returns authdomain.ErrEmailAlreadyExists if the email is taken.
	Update(ctx context.Context, user *entity.User) error
	// Delete removes the user with its tasks and tokens.
	Delete(ctx context.Context, id string) error
	// FindAvatar returns the stored avatar, nil when there is none.
	FindAvatar(ctx context.Context, id string) ([]byte, error)
	// UpdateAvatar replaces the avatar; nil clears it.
	UpdateAvatar(ctx context.Context, id string, avatar []byte) error
}

// PasswordHasher hashes new passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// AvatarIngestor converts an upload into the stored avatar form.
type AvatarIngestor interface {
	Accept(ctx context.Context, data []byte, filename string, size int64) ([]byte, error)
}

// CancellationSender sends the account deletion notification.
type CancellationSender interface {
	SendCancellation(ctx context.Context, email, name string) error
}

// UserUpdate is the typed PATCH /users/me descriptor. Nil fields are left unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Age      *int
	Password *string
}

type profileUsecase struct {
	users  ProfileRepository
	hasher PasswordHasher
	media  AvatarIngestor
	mailer CancellationSender
	notify func(ctx context.Context, op string, fn func(ctx context.Context) error)
}

// NewProfileUsecase creates a new instance of profileUsecase.
func NewProfileUsecase(users ProfileRepository, hasher PasswordHasher, media AvatarIngestor, mailer CancellationSender) *profileUsecase {
	return &profileUsecase{
		users:  users,
		hasher: hasher,
		media:  media,
		mailer: mailer,
		notify: func(ctx context.Context, op string, fn func(ctx context.Context) error) {
			async.Go(ctx, op, async.DefaultTimeout, fn)
		},
	}
}

// UpdateMe validates every present field first and applies none of them if any fails.
func (u *profileUsecase) UpdateMe(ctx context.Context, user *entity.User, upd UserUpdate) (*entity.User, error) {
	verr := &apperr.ValidationError{}
	next := *user
	if upd.Name != nil {
		next.Name = authdomain.NormalizeName(verr, *upd.Name)
	}
	if upd.Email != nil {
		next.Email = authdomain.NormalizeEmail(verr, *upd.Email)
	}
	if upd.Age != nil {
		authdomain.CheckAge(verr, *upd.Age)
		next.Age = *upd.Age
	}
	var password string
	if upd.Password != nil {
		password = authdomain.NormalizePassword(verr, *upd.Password)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if upd.Password != nil {
		hashed, err := u.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		next.PasswordHash = hashed
	}

	if err := u.users.Update(ctx, &next); err != nil {
		if errors.Is(err, authdomain.ErrEmailAlreadyExists) {
			return nil, apperr.NewValidationError("email", "is already in use")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &next, nil
}

// DeleteMe removes the account and everything it owns, then says goodbye by email.
func (u *profileUsecase) DeleteMe(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := u.users.Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	email, name := user.Email, user.Name
	u.notify(ctx, "send cancellation email", func(ctx context.Context) error {
		return u.mailer.SendCancellation(ctx, email, name)
	})
	return user, nil
}

// UploadAvatar canonicalizes the upload and stores it. A rejected upload leaves the previous avatar untouched.
func (u *profileUsecase) UploadAvatar(ctx context.Context, user *entity.User, data []byte, filename string, size int64) error {
	blob, err := u.media.Accept(ctx, data, filename, size)
	if err != nil {
		return err
	}
	return u.users.UpdateAvatar(ctx, user.ID, blob)
}

// DeleteAvatar clears the avatar.
func (u *profileUsecase) DeleteAvatar(ctx context.Context, user *entity.User) error {
	return u.users.UpdateAvatar(ctx, user.ID, nil)
}

// GetAvatar returns the avatar of any user. Missing users and missing avatars both fail with not found.
func (u *profileUsecase) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	blob, err := u.users.FindAvatar(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, domain.ErrAvatarNotFound
	}
	return blob, nil
}
