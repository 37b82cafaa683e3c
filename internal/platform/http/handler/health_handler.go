// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger は依存サービス（データベースなど）の疎通確認を行います。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// checkTimeout は依存サービスごとの疎通確認の上限時間です。
const checkTimeout = 2 * time.Second

// Health は /healthz エンドポイントのハンドラーを返します。
// 登録されたすべての Pinger が成功した場合のみ200を返し、失敗時は503を返します。
// キャッシュは常に防止します。
func Health(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status := http.StatusOK
		for name, dep := range deps {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			err := dep.PingContext(ctx)
			cancel()
			if err != nil {
				slog.Warn("health check failed", "dependency", name, "error", err)
				status = http.StatusServiceUnavailable
			}
		}

		switch {
		case c.Request.Method == http.MethodHead:
			c.Status(status)
		case status == http.StatusOK:
			c.JSON(status, gin.H{"status": "ok"})
		default:
			c.JSON(status, gin.H{"status": "unavailable"})
		}
	}
}
