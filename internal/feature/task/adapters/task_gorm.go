// Package adapters provides the GORM implementation of the task repository.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task_backend/internal/feature/task/domain"
	"task_backend/internal/feature/task/domain/entity"
	"task_backend/internal/feature/task/usecase"
)

type taskGorm struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm creates a new instance of taskGorm.
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	if task == nil {
		return fmt.Errorf("task is nil")
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID matches on both id and owner, so a foreign task looks exactly like a missing one.
func (r *taskGorm) FindByID(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	var t entity.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskGorm) List(ctx context.Context, q usecase.ListQuery) ([]entity.Task, error) {
	tx := r.db.WithContext(ctx).Where("owner_id = ?", q.OwnerID)
	if q.Completed != nil {
		tx = tx.Where("completed = ?", *q.Completed)
	}

	field := q.SortField
	if field == "" {
		field = usecase.DefaultSortField
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: field}, Desc: q.SortDesc})
	// ties resolve in creation order
	if field != usecase.DefaultSortField {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: usecase.DefaultSortField}})
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	tasks := make([]entity.Task, 0)
	if err := tx.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes description and completed only. The owner column is never part of the statement.
func (r *taskGorm) Update(ctx context.Context, task *entity.Task) error {
	task.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Where("id = ? AND owner_id = ?", task.ID, task.OwnerID).
		Updates(map[string]any{
			"description": task.Description,
			"completed":   task.Completed,
			"updated_at":  task.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskGorm) Delete(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	var deleted *entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t entity.Task
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTaskNotFound
			}
			return err
		}
		if err := tx.Delete(&t).Error; err != nil {
			return err
		}
		deleted = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
