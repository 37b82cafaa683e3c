// Package usecase はタスク操作のビジネスロジックを実装します。
// すべての操作は呼び出し元ユーザーのIDで所有者スコープされます。
package usecase

import (
	"context"

	"task_backend/internal/feature/task/domain"
	"task_backend/internal/feature/task/domain/entity"
	"task_backend/internal/shared/apperr"
)

// TaskRepository はタスクの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TaskRepository interface {
	// Create は新しいタスクを保存し、IDとタイムスタンプを設定します。
	Create(ctx context.Context, task *entity.Task) error
	// FindByID は所有者が一致するタスクを返します。存在しない場合は domain.ErrTaskNotFound。
	FindByID(ctx context.Context, ownerID, id string) (*entity.Task, error)
	// List はクエリに一致するタスクを返します。
	List(ctx context.Context, q ListQuery) ([]entity.Task, error)
	// Update は説明文と完了状態のみを書き込みます。
	Update(ctx context.Context, task *entity.Task) error
	// Delete は所有者が一致するタスクを削除し、削除したタスクを返します。
	Delete(ctx context.Context, ownerID, id string) (*entity.Task, error)
}

// CreateInput は POST /tasks の入力です。所有者は含みません。
type CreateInput struct {
	Description string
	Completed   *bool
}

// TaskUpdate は更新可能なフィールドのみを持つ型付き更新記述子です。
// nil のフィールドは変更しません。
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

// taskUsecase はタスク操作のユースケースを定義します。
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// Create は ownerID を所有者とするタスクを作成します。
func (u *taskUsecase) Create(ctx context.Context, ownerID string, in CreateInput) (*entity.Task, error) {
	verr := &apperr.ValidationError{}
	task := &entity.Task{
		Description: domain.NormalizeDescription(verr, in.Description),
		OwnerID:     ownerID,
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}

	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get は ownerID が所有するタスクを返します。
func (u *taskUsecase) Get(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	return u.tasks.FindByID(ctx, ownerID, id)
}

// List はクエリパラメータに従って ownerID のタスクを返します。
func (u *taskUsecase) List(ctx context.Context, ownerID string, p ListParams) ([]entity.Task, error) {
	return u.tasks.List(ctx, BuildListQuery(ownerID, p))
}

// Update は検証がすべて通った場合のみ変更を適用します。
func (u *taskUsecase) Update(ctx context.Context, ownerID, id string, upd TaskUpdate) (*entity.Task, error) {
	verr := &apperr.ValidationError{}
	var description string
	if upd.Description != nil {
		description = domain.NormalizeDescription(verr, *upd.Description)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	task, err := u.tasks.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if upd.Description != nil {
		task.Description = description
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}

	if err := u.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete は ownerID が所有するタスクを削除します。
func (u *taskUsecase) Delete(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	return u.tasks.Delete(ctx, ownerID, id)
}
