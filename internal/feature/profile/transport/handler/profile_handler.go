// Package handler はprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/profile/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/media"
	"task_backend/internal/shared/apperr"
)

const (
	// AvatarField はアップロードのmultipartフィールド名です。
	AvatarField = "avatar"
	// multipart のヘッダーと境界文字列のための余裕
	multipartOverhead = 512 << 10
	// AvatarContentType は保存済みアバターの Content-Type です。
	AvatarContentType = "image/png"
)

// ProfileUsecase はプロフィール操作のユースケースインターフェースを定義します。
type ProfileUsecase interface {
	UpdateMe(ctx context.Context, user *entity.User, upd usecase.UserUpdate) (*entity.User, error)
	DeleteMe(ctx context.Context, user *entity.User) (*entity.User, error)
	UploadAvatar(ctx context.Context, user *entity.User, data []byte, filename string, size int64) error
	DeleteAvatar(ctx context.Context, user *entity.User) error
	GetAvatar(ctx context.Context, userID string) ([]byte, error)
}

// ProfileHandler は /users/me 配下と公開アバターのHTTPリクエストを処理します。
type ProfileHandler struct {
	uc ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(uc ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func principal(c *gin.Context) (*entity.User, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		api.RespondError(c, apperr.ErrUnauthorized)
	}
	return user, ok
}

// Me は GET /users/me を処理します。
func (h *ProfileHandler) Me(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, api.NewUserResponse(user))
}

// UpdateMe は PATCH /users/me を処理します。
// name, email, age, password 以外のキーを含むリクエストは全体を拒否します。
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	var req api.UpdateUserRequest
	if err := api.DecodeStrict(c.Request.Body, &req); err != nil {
		api.RespondError(c, err)
		return
	}
	updated, err := h.uc.UpdateMe(c.Request.Context(), user, usecase.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.NewUserResponse(updated))
}

// DeleteMe は DELETE /users/me を処理し、削除したユーザーを返します。
func (h *ProfileHandler) DeleteMe(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteMe(c.Request.Context(), user)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	slog.Info("user deleted", "user_id", deleted.ID)
	c.JSON(http.StatusOK, api.NewUserResponse(deleted))
}

// UploadAvatar は POST /users/me/avatar を処理します。
// 本文はデコード前にサイズ上限で打ち切ります。
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	if c.Request.ContentLength > media.MaxUploadSize+multipartOverhead {
		api.RespondError(c, apperr.ErrFileTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadSize+multipartOverhead)

	fh, err := c.FormFile(AvatarField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			api.RespondError(c, apperr.ErrFileTooLarge)
		case errors.Is(err, http.ErrMissingFile):
			api.RespondError(c, apperr.NewValidationError(AvatarField, "is required"))
		default:
			api.RespondError(c, apperr.NewValidationError(AvatarField, "must be a multipart file upload"))
		}
		return
	}

	f, err := fh.Open()
	if err != nil {
		api.RespondError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, media.MaxUploadSize+1))
	if err != nil {
		api.RespondError(c, err)
		return
	}

	if err := h.uc.UploadAvatar(c.Request.Context(), user, data, fh.Filename, fh.Size); err != nil {
		if apperr.IsMedia(err) {
			slog.Warn("avatar rejected", "user_id", user.ID, "error", err)
		}
		api.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// DeleteAvatar は DELETE /users/me/avatar を処理します。
func (h *ProfileHandler) DeleteAvatar(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteAvatar(c.Request.Context(), user); err != nil {
		api.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetAvatar は GET /users/:id/avatar を処理します。認証は不要です。
func (h *ProfileHandler) GetAvatar(c *gin.Context) {
	blob, err := h.uc.GetAvatar(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, AvatarContentType, blob)
}
