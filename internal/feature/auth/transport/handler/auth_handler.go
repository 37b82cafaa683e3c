// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録し、最初のセッショントークンを返します。
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, string, error)
	// Login はユーザーを認証し、新しいセッショントークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	// Logout はリクエストで提示されたトークンのみを失効させます。
	Logout(ctx context.Context, user *entity.User, token string) error
	// LogoutAll はユーザーの全トークンを失効させます。
	LogoutAll(ctx context.Context, user *entity.User) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup は POST /users を処理します。
// - 入力検証エラー時は400とフィールド一覧を返却
// - 成功時はユーザーとトークンを201で返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondError(c, api.BindError(err))
		return
	}
	user, token, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		api.RespondError(c, err)
		return
	}
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.AuthResponse{User: api.NewUserResponse(user), Token: token})
}

// Login は POST /users/login を処理します。
// ユーザー列挙攻撃を防止するため、失敗理由は常に同じメッセージになります。
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondError(c, apperr.ErrInvalidCredentials)
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		api.RespondError(c, err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.AuthResponse{User: api.NewUserResponse(user), Token: token})
}

// Logout は POST /users/logout を処理します。AuthRequired の後段で使用します。
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		api.RespondError(c, apperr.ErrUnauthorized)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), user, jwtmw.CurrentToken(c)); err != nil {
		api.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// LogoutAll は POST /users/logoutAll を処理します。AuthRequired の後段で使用します。
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		api.RespondError(c, apperr.ErrUnauthorized)
		return
	}
	if err := h.auth.LogoutAll(c.Request.Context(), user); err != nil {
		api.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
