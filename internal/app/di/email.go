// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"

	"task_backend/internal/platform/email"
	platformhttp "task_backend/internal/platform/http"
)

// EmailSender sends both account notifications.
type EmailSender interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendCancellation(ctx context.Context, to, name string) error
}

// NewEmailSender returns a SendGrid-backed sender when an API key is configured.
// Otherwise, it falls back to logging the messages.
func NewEmailSender(cfg email.Config) EmailSender {
	if cfg.APIKey == "" {
		slog.Warn("SENDGRID_API_KEY is not set. Emails will only be logged.")
		return email.NewLogSender(slog.Default())
	}
	return email.NewSendGridSender(cfg, platformhttp.NewHTTPClient(cfg.Timeout))
}
