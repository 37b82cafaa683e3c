package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	profilehandler "task_backend/internal/feature/profile/transport/handler"
	taskhandler "task_backend/internal/feature/task/transport/handler"
	jwtmw "task_backend/internal/platform/jwt"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Profile *profilehandler.ProfileHandler
	Task    *taskhandler.TaskHandler
	Health  gin.HandlerFunc
}

// NewRouter builds the gin engine with every route of the service.
// CORS is enabled only when corsOrigins is non-empty.
func NewRouter(h Handlers, verifier jwtmw.Verifier, corsOrigins []string) *gin.Engine {
	r := gin.Default()

	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  corsOrigins,
			AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	// 新規ユーザー登録
	r.POST("/users", h.Auth.Signup)
	// ログイン（トークン発行）
	r.POST("/users/login", h.Auth.Login)
	// 公開アバター
	r.GET("/users/:id/avatar", h.Profile.GetAvatar)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(verifier))
	{
		auth.POST("/users/logout", h.Auth.Logout)
		auth.POST("/users/logoutAll", h.Auth.LogoutAll)

		auth.GET("/users/me", h.Profile.Me)
		auth.PATCH("/users/me", h.Profile.UpdateMe)
		auth.DELETE("/users/me", h.Profile.DeleteMe)
		auth.POST("/users/me/avatar", h.Profile.UploadAvatar)
		auth.DELETE("/users/me/avatar", h.Profile.DeleteAvatar)

		auth.POST("/tasks", h.Task.Create)
		auth.GET("/tasks", h.Task.List)
		auth.GET("/tasks/:id", h.Task.Get)
		auth.PATCH("/tasks/:id", h.Task.Update)
		auth.DELETE("/tasks/:id", h.Task.Delete)
	}

	return r
}
