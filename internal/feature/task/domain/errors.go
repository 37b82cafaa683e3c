// Package domain はtaskフィーチャーのドメインエラーとフィールド規則を定義します。
package domain

import (
	"fmt"
	"strings"

	"task_backend/internal/shared/apperr"
)

// ErrTaskNotFound はタスクが存在しない、または他のユーザーが所有していることを示します。
// 両者は区別しません。
var ErrTaskNotFound = fmt.Errorf("task %w", apperr.ErrNotFound)

// NormalizeDescription は説明文をトリムし、空の場合はverrに記録します。
func NormalizeDescription(verr *apperr.ValidationError, description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		verr.Add("description", "is required")
	}
	return description
}
