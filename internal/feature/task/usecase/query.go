package usecase

import (
	"strconv"
	"strings"
)

// ListParams は GET /tasks のクエリパラメータを未解釈のまま保持します。
type ListParams struct {
	Completed string
	SortBy    string
	Limit     string
	Skip      string
}

// ListQuery はタスク一覧取得の検証済みクエリです。常に所有者で絞り込まれます。
type ListQuery struct {
	OwnerID string

	// Completed が nil の場合は完了状態で絞り込みません。
	Completed *bool

	// SortField はカラム名で、sortColumns の値のいずれかです。
	SortField string
	SortDesc  bool

	// Limit が 0 の場合は件数制限なし。
	Limit  int
	Offset int
}

// DefaultSortField は並び順の指定がない、または無効な場合のカラムです。
const DefaultSortField = "created_at"

const sortSeparator = ":"

// sortColumns maps the public sort keys to columns.
var sortColumns = map[string]string{
	"description": "description",
	"completed":   "completed",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// BuildListQuery はクエリパラメータを検証済みの ListQuery に変換します。
// 解釈できない値はエラーにせず無視します。
func BuildListQuery(ownerID string, p ListParams) ListQuery {
	q := ListQuery{
		OwnerID:   ownerID,
		SortField: DefaultSortField,
	}

	switch p.Completed {
	case "true":
		v := true
		q.Completed = &v
	case "false":
		v := false
		q.Completed = &v
	}

	if p.SortBy != "" {
		field, dir, _ := strings.Cut(p.SortBy, sortSeparator)
		if col, ok := sortColumns[strings.TrimSpace(field)]; ok {
			q.SortField = col
			dir = strings.ToLower(strings.TrimSpace(dir))
			q.SortDesc = dir == "desc" || dir == "descending"
		}
	}

	q.Limit = parseNonNegative(p.Limit)
	q.Offset = parseNonNegative(p.Skip)
	return q
}

// parseNonNegative returns 0 for anything that is not a non-negative base-10 integer.
func parseNonNegative(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
